package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/tezexpress/courier-manager/internal/entity"
)

//go:generate mockery --with-expecter --case underscore --all --output=./mocks
type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	Snapshots interface {
		ContextStore
		// ListByRange returns snapshots whose ordering timestamp falls in
		// [from, to). courierId == 0 means all couriers. The result may be a
		// coarse superset; the analytics engine re-derives true range
		// membership on its own.
		ListByRange(ctx context.Context, from, to time.Time, courierId int) ([]entity.OrderSnapshot, error)
		// ListByOrderNumbers returns every snapshot of the given logical
		// orders regardless of date, so lifecycle classification has full
		// context.
		ListByOrderNumbers(ctx context.Context, orderNumbers []string) ([]entity.OrderSnapshot, error)
		// AddSnapshot appends one snapshot row. The commerce sync calls this
		// on every order status change.
		AddSnapshot(ctx context.Context, snap *entity.OrderSnapshot) (int, error)
		BulkAddSnapshots(ctx context.Context, snaps []entity.OrderSnapshot) error
	}

	Couriers interface {
		GetCourierById(ctx context.Context, id int) (*entity.Courier, error)
		// ListByRole returns the ranking cohort when called with entity.RoleCourier.
		ListByRole(ctx context.Context, role string) ([]entity.Courier, error)
		UpsertCourier(ctx context.Context, c *entity.Courier) (int, error)
	}

	// Analytics is the order-lifecycle and courier-performance engine.
	Analytics interface {
		// CohortRanking scores and ranks every courier with role "courier".
		CohortRanking(ctx context.Context, period entity.TimeRange) ([]entity.CourierPerformance, error)
		// CourierReport builds the full analytics bundle for one courier;
		// courierId == 0 yields the global view.
		CourierReport(ctx context.Context, period entity.TimeRange, courierId int) (*entity.AnalyticsData, error)
		// ReturnedOrderDetails lists every order in scope that was ever
		// returned, with its full status history for drill-down.
		ReturnedOrderDetails(ctx context.Context, period entity.TimeRange, courierId int) ([]entity.ReturnedOrderDetail, error)
	}

	Repository interface {
		Snapshots() Snapshots
		Couriers() Couriers
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		DB() DB
	}

	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
		PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
