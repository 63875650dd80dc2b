package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/figurestore/internal/cart"
	"github.com/nikolayk812/figurestore/internal/catalog"
	"github.com/nikolayk812/figurestore/internal/port"
	"github.com/nikolayk812/figurestore/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type cartSnapshotRepositorySuite struct {
	suite.Suite

	container *postgres.PostgresContainer
	repo      port.SnapshotRepository
	pool      *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestCartSnapshotRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartSnapshotRepositorySuite))
}

// before all tests in the suite
func (suite *cartSnapshotRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewCartSnapshot(suite.pool)
	suite.Require().NoError(err)
}

// after all tests in the suite
func (suite *cartSnapshotRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(suite.T().Context()))
	}
}

func (suite *cartSnapshotRepositorySuite) TestSaveAndGet() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		key       string
		payloads  []string
		wantFound bool
		wantError string
	}{
		{
			name:      "save then get: ok",
			key:       gofakeit.UUID(),
			payloads:  []string{`[{"product":{"id":1},"quantity":2}]`},
			wantFound: true,
		},
		{
			name: "second save overwrites: ok",
			key:  gofakeit.UUID(),
			payloads: []string{
				`[{"product":{"id":1},"quantity":2}]`,
				`[{"product":{"id":4},"quantity":1}]`,
			},
			wantFound: true,
		},
		{
			name:      "missing key: not found",
			key:       gofakeit.UUID(),
			wantFound: false,
		},
		{
			name:      "empty key: error",
			key:       "",
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			for _, p := range tt.payloads {
				require.NoError(t, suite.repo.SaveSnapshot(ctx, tt.key, []byte(p)))
			}

			got, found, err := suite.repo.GetSnapshot(ctx, tt.key)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)

			if tt.wantFound {
				assert.JSONEq(t, tt.payloads[len(tt.payloads)-1], string(got))
			}
		})
	}
}

func (suite *cartSnapshotRepositorySuite) TestCartRoundTrip() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	key := gofakeit.UUID()
	store := catalog.NewSeeded()

	svc, err := cart.New(store, suite.repo, cart.WithSessionKey(key))
	require.NoError(t, err)

	for _, id := range []int64{12, 3, 12, 15} {
		p, err := store.GetByID(ctx, id)
		require.NoError(t, err)
		require.NoError(t, svc.AddToCart(ctx, p))
	}

	want, err := svc.Lines(ctx)
	require.NoError(t, err)

	restored, err := cart.New(store, suite.repo, cart.WithSessionKey(key))
	require.NoError(t, err)
	require.NoError(t, restored.Load(ctx))

	got, err := restored.Lines(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, got))
}

func (suite *cartSnapshotRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_snapshots")
	suite.NoError(err)
}
