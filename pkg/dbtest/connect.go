package dbtest

import (
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// EnvDSN - переменная с адресом одноразовой базы Postgres для
// интеграционных тестов.
const EnvDSN = "TEST_PG_DSN"

// Connect открывает тестовую базу и применяет миграции из dir. Без EnvDSN
// тест пропускается. При очистке миграции откатываются.
func Connect(t *testing.T, dir string) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDSN)
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)

	up, err := UpFiles(dir)
	require.NoError(t, err)

	down, err := DownFiles(dir)
	require.NoError(t, err)

	require.NoError(t, MigrateFromFile(db, down...))
	require.NoError(t, MigrateFromFile(db, up...))

	t.Cleanup(func() {
		_ = MigrateFromFile(db, down...)
		_ = db.Close()
	})

	return db
}
