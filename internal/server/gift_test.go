package server_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gift_ledger/internal/domain"
	"gift_ledger/internal/domain/entity"
	giftservice "gift_ledger/internal/domain/service/gift"
	"gift_ledger/internal/domain/value"
	"gift_ledger/internal/server"
	"gift_ledger/pkg/errcodes"
	"gift_ledger/pkg/middlewarex"
	"gift_ledger/pkg/rest"
	"gift_ledger/pkg/tests"
)

type giftServiceMock struct {
	CreateFunc     func(ctx context.Context, draft entity.GiftDraft) (*entity.Gift, error)
	CompleteFunc   func(ctx context.Context, giftID, txSignature string) (*entity.Gift, error)
	CancelFunc     func(ctx context.Context, giftID string) error
	ListByPostFunc func(ctx context.Context, postID string) ([]entity.Gift, error)
	PostTotalsFunc func(ctx context.Context, postID string) ([]entity.PostGiftTotal, error)
}

func (m *giftServiceMock) Create(ctx context.Context, draft entity.GiftDraft) (*entity.Gift, error) {
	return m.CreateFunc(ctx, draft)
}

func (m *giftServiceMock) Complete(ctx context.Context, giftID, txSignature string) (*entity.Gift, error) {
	return m.CompleteFunc(ctx, giftID, txSignature)
}

func (m *giftServiceMock) Cancel(ctx context.Context, giftID string) error {
	return m.CancelFunc(ctx, giftID)
}

func (m *giftServiceMock) ListByPost(ctx context.Context, postID string) ([]entity.Gift, error) {
	return m.ListByPostFunc(ctx, postID)
}

func (m *giftServiceMock) PostTotals(ctx context.Context, postID string) ([]entity.PostGiftTotal, error) {
	return m.PostTotalsFunc(ctx, postID)
}

var createdAt = time.Date(2026, 5, 6, 7, 8, 9, 123456789, time.UTC) //nolint:gochecknoglobals

func newAPI(t *testing.T, service *giftServiceMock) tests.APIClient {
	t.Helper()

	router := chi.NewRouter()
	router.Use(middlewarex.TraceID)

	server.NewServer(server.NewGiftServer(service)).RegisterRoutes(router)

	httpServer := httptest.NewServer(router)
	t.Cleanup(httpServer.Close)

	return tests.NewAPIClient(t, httpServer.URL, httpServer.Client())
}

func pendingGift(draft entity.GiftDraft) *entity.Gift {
	gift := entity.NewPendingGift(draft)
	gift.ID = "cv1g2k3m4n5p6q7r8s9t"
	gift.CreatedAt = createdAt
	gift.UpdatedAt = createdAt

	return &gift
}

func TestCreateGift(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	randomizer := tests.NewRandomizer()
	amount, token := randomizer.Amount(), randomizer.Token()

	var got entity.GiftDraft

	api := newAPI(t, &giftServiceMock{
		CreateFunc: func(_ context.Context, draft entity.GiftDraft) (*entity.Gift, error) {
			got = draft
			return pendingGift(draft), nil
		},
	})

	request := rest.CreateGiftRequest{
		SenderID:        "A",
		SenderWallet:    "wallet-a",
		RecipientID:     "B",
		RecipientWallet: "wallet-b",
		PostID:          "P",
		Amount:          amount,
		Token:           token,
	}

	var response rest.CreateGiftResponse

	resp, err := api.Post(ctx, "/api/gifts/create", request, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)

	rq.Equal("A", got.SenderID)
	rq.InDelta(amount, got.Amount, 0)
	rq.Equal(token, got.Token)
	rq.Nil(got.SenderBalanceAtTime)

	rq.Equal("cv1g2k3m4n5p6q7r8s9t", response.GiftID)
	rq.Equal(response.GiftID, response.Gift.ID)
	rq.Equal("pending", response.Gift.Status)
	rq.Nil(response.Gift.TxSignature)
	rq.InDelta(amount, response.Gift.Amount, 0)
	rq.Equal("2026-05-06T07:08:09.123456789Z", response.Gift.CreatedAt)
}

func TestCreateGift_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		serviceErr error
		statusCode int
		code       string
		message    string
		errors     []string
	}{
		{
			name: "validation lists every field",
			body: `{"amount": -1}`,
			serviceErr: domain.NewValidationError(
				"senderId is required and must be a string",
				"amount is required and must be a positive number",
			),
			statusCode: http.StatusBadRequest,
			code:       errcodes.ValidationError.String(),
			message:    "Validation failed",
			errors: []string{
				"senderId is required and must be a string",
				"amount is required and must be a positive number",
			},
		},
		{
			name:       "self gift",
			body:       `{"senderId":"A","recipientId":"A"}`,
			serviceErr: domain.NewBusinessRuleError(errcodes.SelfGiftRejected, "Cannot send gift to yourself"),
			statusCode: http.StatusBadRequest,
			code:       errcodes.SelfGiftRejected.String(),
			message:    "Cannot send gift to yourself",
		},
		{
			name:       "malformed json",
			body:       `{"senderId":`,
			statusCode: http.StatusBadRequest,
			code:       errcodes.ValidationError.String(),
			message:    "Invalid JSON",
		},
		{
			name:       "body is not an object",
			body:       `["senderId"]`,
			statusCode: http.StatusBadRequest,
			code:       errcodes.ValidationError.String(),
			message:    "Invalid JSON",
		},
		{
			name:       "store failure",
			body:       `{}`,
			serviceErr: domain.WrapError(errors.New("connection refused"), errcodes.InternalServerError, "Failed to create gift record"),
			statusCode: http.StatusInternalServerError,
			code:       errcodes.InternalServerError.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			called := false

			api := newAPI(t, &giftServiceMock{
				CreateFunc: func(_ context.Context, draft entity.GiftDraft) (*entity.Gift, error) {
					called = true

					if tc.serviceErr != nil {
						return nil, tc.serviceErr
					}

					return pendingGift(draft), nil
				},
			})

			var errResponse rest.Error

			resp, err := api.PostJSON(context.Background(), "/api/gifts/create", tc.body, nil, &errResponse)
			rq.NoError(err)
			rq.Equal(tc.statusCode, resp.StatusCode)
			rq.Equal(tc.code, string(errResponse.Code))
			rq.Equal(resp.Header.Get("X-Trace-Id"), errResponse.SupportID)
			rq.Equal(tc.serviceErr != nil, called)

			if tc.message != "" {
				rq.Equal(tc.message, errResponse.Message)
			}

			if tc.statusCode == http.StatusInternalServerError {
				rq.Contains(errResponse.Message, "connection refused")
			}

			rq.Equal(tc.errors, errResponse.Errors)
		})
	}
}

func TestCompleteGift(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	api := newAPI(t, &giftServiceMock{
		CompleteFunc: func(_ context.Context, giftID, txSignature string) (*entity.Gift, error) {
			gift := pendingGift(entity.GiftDraft{SenderID: "A", RecipientID: "B", PostID: "P", Amount: 5, Token: "SOL"})
			gift.ID = giftID
			gift.Status = value.GiftStatusCompleted
			gift.TxSignature = &txSignature
			gift.UpdatedAt = createdAt.Add(time.Second)

			return gift, nil
		},
	})

	var response rest.CompleteGiftResponse

	resp, err := api.Post(ctx, "/api/gifts/complete", rest.CompleteGiftRequest{
		GiftID:               "g1",
		TransactionSignature: "sig123",
	}, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("g1", response.Gift.ID)
	rq.Equal("completed", response.Gift.Status)
	rq.NotNil(response.Gift.TxSignature)
	rq.Equal("sig123", *response.Gift.TxSignature)
	rq.Equal("2026-05-06T07:08:10.123456789Z", response.Gift.UpdatedAt)
}

func TestCompleteGift_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		serviceErr error
		statusCode int
		code       string
		errors     []string
	}{
		{
			name:       "missing fields",
			body:       `{}`,
			statusCode: http.StatusBadRequest,
			code:       errcodes.ValidationError.String(),
			errors:     []string{"giftId is required", "transactionSignature is required"},
		},
		{
			name:       "missing signature",
			body:       `{"giftId":"g1"}`,
			statusCode: http.StatusBadRequest,
			code:       errcodes.ValidationError.String(),
			errors:     []string{"transactionSignature is required"},
		},
		{
			name:       "not found",
			body:       `{"giftId":"nonexistent-id","transactionSignature":"sig"}`,
			serviceErr: domain.NewNotFoundError(errcodes.GiftNotFound, "Gift not found"),
			statusCode: http.StatusNotFound,
			code:       errcodes.GiftNotFound.String(),
		},
		{
			name:       "already finalized",
			body:       `{"giftId":"g1","transactionSignature":"sig"}`,
			serviceErr: domain.NewConflictError(errcodes.GiftAlreadyFinalized, "Gift is already cancelled"),
			statusCode: http.StatusConflict,
			code:       errcodes.GiftAlreadyFinalized.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			api := newAPI(t, &giftServiceMock{
				CompleteFunc: func(context.Context, string, string) (*entity.Gift, error) {
					return nil, tc.serviceErr
				},
			})

			var errResponse rest.Error

			resp, err := api.PostJSON(context.Background(), "/api/gifts/complete", tc.body, nil, &errResponse)
			rq.NoError(err)
			rq.Equal(tc.statusCode, resp.StatusCode)
			rq.Equal(tc.code, string(errResponse.Code))
			rq.Equal(tc.errors, errResponse.Errors)
		})
	}
}

func TestCancelGift(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		serviceErr error
		statusCode int
		message    string
	}{
		{
			name:       "pending gift",
			body:       `{"giftId":"g1"}`,
			statusCode: http.StatusOK,
			message:    "Gift cancelled successfully",
		},
		{
			name:       "missing gift id",
			body:       `{}`,
			statusCode: http.StatusBadRequest,
			message:    "giftId is required",
		},
		{
			name:       "not found",
			body:       `{"giftId":"g1"}`,
			serviceErr: domain.NewNotFoundError(errcodes.GiftNotFound, "Gift not found"),
			statusCode: http.StatusNotFound,
			message:    "Gift not found",
		},
		{
			name:       "already cancelled",
			body:       `{"giftId":"g1"}`,
			serviceErr: domain.NewConflictError(errcodes.GiftAlreadyFinalized, "Gift is already cancelled"),
			statusCode: http.StatusConflict,
			message:    "Gift is already cancelled",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			api := newAPI(t, &giftServiceMock{
				CancelFunc: func(context.Context, string) error {
					return tc.serviceErr
				},
			})

			var (
				response    rest.MessageResponse
				errResponse rest.Error
			)

			resp, err := api.PostJSON(context.Background(), "/api/gifts/cancel", tc.body, &response, &errResponse)
			rq.NoError(err)
			rq.Equal(tc.statusCode, resp.StatusCode)

			if tc.statusCode == http.StatusOK {
				rq.Equal(tc.message, response.Message)
			} else {
				rq.Equal(tc.message, errResponse.Message)
			}
		})
	}
}

func TestGetGiftsByPost(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	sig := "sig123"

	api := newAPI(t, &giftServiceMock{
		ListByPostFunc: func(_ context.Context, postID string) ([]entity.Gift, error) {
			if postID != "P" {
				return []entity.Gift{}, nil
			}

			gift := pendingGift(entity.GiftDraft{SenderID: "A", RecipientID: "B", PostID: "P", Amount: 5, Token: "SOL"})
			gift.Status = value.GiftStatusCompleted
			gift.TxSignature = &sig

			return []entity.Gift{*gift}, nil
		},
	})

	var response rest.GiftListResponse

	resp, err := api.Get(ctx, "/api/gifts/P", &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(response.Gifts, 1)
	rq.Equal("completed", response.Gifts[0].Status)
	rq.Equal("sig123", *response.Gifts[0].TxSignature)
}

func TestGetGiftsByPost_Empty(t *testing.T) {
	rq := require.New(t)

	router := chi.NewRouter()
	server.NewServer(server.NewGiftServer(&giftServiceMock{
		ListByPostFunc: func(context.Context, string) ([]entity.Gift, error) {
			return []entity.Gift{}, nil
		},
	})).RegisterRoutes(router)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/gifts/empty-post", http.NoBody))

	body, err := io.ReadAll(recorder.Body)
	rq.NoError(err)
	rq.Equal(http.StatusOK, recorder.Code)
	rq.JSONEq(`{"gifts":[]}`, string(body))
}

func TestGetGiftsByPost_StoreFailure(t *testing.T) {
	rq := require.New(t)

	api := newAPI(t, &giftServiceMock{
		ListByPostFunc: func(context.Context, string) ([]entity.Gift, error) {
			return nil, domain.WrapError(errors.New("timeout"), errcodes.InternalServerError, "Failed to fetch gifts")
		},
	})

	var errResponse rest.Error

	resp, err := api.Get(context.Background(), "/api/gifts/P", nil, &errResponse)
	rq.NoError(err)
	rq.Equal(http.StatusInternalServerError, resp.StatusCode)
	rq.Contains(errResponse.Message, "Failed to fetch gifts")
}

func TestGetPostGiftTotals(t *testing.T) {
	rq := require.New(t)

	api := newAPI(t, &giftServiceMock{
		PostTotalsFunc: func(_ context.Context, postID string) ([]entity.PostGiftTotal, error) {
			return []entity.PostGiftTotal{
				{
					PostID:      postID,
					Token:       "SOL",
					GiftCount:   2,
					AmountTotal: decimal.RequireFromString("7.5"),
					UpdatedAt:   createdAt,
				},
			}, nil
		},
	})

	var response rest.PostGiftTotalsResponse

	resp, err := api.Get(context.Background(), "/api/gifts/P/totals", &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(response.Totals, 1)
	rq.Equal("P", response.Totals[0].PostID)
	rq.Equal(int64(2), response.Totals[0].GiftCount)
	rq.Equal("7.5", response.Totals[0].AmountTotal)
}

func TestCreateGift_WrongTypesBecomeViolations(t *testing.T) {
	testCases := []struct {
		name   string
		body   string
		errors []string
	}{
		{
			name: "number id and string amount",
			body: `{"senderId":42,"amount":"5"}`,
			errors: []string{
				"senderId is required and must be a string",
				"senderWallet is required and must be a string",
				"recipientId is required and must be a string",
				"recipientWallet is required and must be a string",
				"postId is required and must be a string",
				"amount is required and must be a positive number",
				"token is required and must be a string",
			},
		},
		{
			name: "only the balance is wrong",
			body: `{"senderId":"A","senderWallet":"wa","recipientId":"B","recipientWallet":"wb",` +
				`"postId":"P","amount":5,"token":"SOL","senderBalanceAtTime":"10"}`,
			errors: []string{
				"senderBalanceAtTime must be a non-negative number or null",
			},
		},
		{
			name: "null balance is accepted, boolean token is not",
			body: `{"senderId":"A","senderWallet":"wa","recipientId":"B","recipientWallet":"wb",` +
				`"postId":"P","amount":5,"token":true,"senderBalanceAtTime":null}`,
			errors: []string{
				"token is required and must be a string",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			api := newAPI(t, &giftServiceMock{
				CreateFunc: giftservice.NewGiftService(nil, nil).Create,
			})

			var errResponse rest.Error

			resp, err := api.PostJSON(context.Background(), "/api/gifts/create", tc.body, nil, &errResponse)
			rq.NoError(err)
			rq.Equal(http.StatusBadRequest, resp.StatusCode)
			rq.Equal(errcodes.ValidationError.String(), string(errResponse.Code))
			rq.Equal("Validation failed", errResponse.Message)
			rq.Equal(tc.errors, errResponse.Errors)
		})
	}
}
