package server

// Server объединяет HTTP-обработчики отдельных сущностей.
type Server struct {
	GiftServer
}

func NewServer(
	giftServer GiftServer,
) Server {
	return Server{
		GiftServer: giftServer,
	}
}
