// Package repository is the single product contract consumers use. It routes
// every call to the upstream API or to the offline store depending on the
// session mode, and reports outcomes through a notifier.
//
// Data written while offline stays in the offline store. Nothing is migrated
// to the upstream API when it becomes reachable again.
package repository

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/inventory-client/internal/cache"
	"github.com/aaravmahajanofficial/inventory-client/internal/connectivity"
	appErrors "github.com/aaravmahajanofficial/inventory-client/internal/errors"
	"github.com/aaravmahajanofficial/inventory-client/internal/metrics"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/aaravmahajanofficial/inventory-client/internal/notify"
	"github.com/aaravmahajanofficial/inventory-client/internal/query"
	"github.com/aaravmahajanofficial/inventory-client/internal/utils"
	"github.com/go-playground/validator/v10"
)

const (
	MsgCreated = "Producto creado exitosamente"
	MsgUpdated = "Producto actualizado exitosamente"
	MsgDeleted = "Producto eliminado exitosamente"
)

const msgModeUnknown = "connectivity has not been resolved yet"

// Remote is the upstream products API.
type Remote interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (models.Product, error)
	Create(ctx context.Context, req *models.CreateProductRequest) (models.Product, error)
	Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (models.Product, error)
	Delete(ctx context.Context, id int64) error
}

// Offline is the local product store used when the upstream API is down.
type Offline interface {
	Snapshot() []models.Product
	Get(id int64) (models.Product, error)
	Add(ctx context.Context, req *models.CreateProductRequest) (models.Product, error)
	Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (models.Product, error)
	Remove(ctx context.Context, id int64) error
}

type Deps struct {
	State     *connectivity.State
	Offline   Offline
	Remote    Remote
	Query     *query.Client
	Notifier  notify.Notifier
	Validator *validator.Validate
	Logger    *slog.Logger
}

type Repository struct {
	state    *connectivity.State
	offline  Offline
	remote   Remote
	query    *query.Client
	notifier notify.Notifier
	validate *validator.Validate
	logger   *slog.Logger
}

func New(deps Deps) *Repository {
	r := &Repository{
		state:    deps.State,
		offline:  deps.Offline,
		remote:   deps.Remote,
		query:    deps.Query,
		notifier: deps.Notifier,
		validate: deps.Validator,
		logger:   deps.Logger,
	}

	if r.state == nil {
		r.state = connectivity.NewState()
	}
	if r.query == nil {
		r.query = query.New(cache.NewMemoryCache(0), query.DefaultStaleTime)
	}
	if r.notifier == nil {
		r.notifier = notify.Discard{}
	}
	if r.validate == nil {
		r.validate = utils.NewValidator()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

func (r *Repository) Mode() models.Mode {
	return r.state.Mode()
}

// List returns the product list for the current mode. Remote failures are
// reported in the result, never as a panic or a nil slice.
func (r *Repository) List(ctx context.Context) models.ListResult {
	mode := r.state.Mode()

	switch mode {
	case models.ModeOffline:
		metrics.ObserveOperation("list", string(mode), nil)
		return models.ListResult{Data: r.offline.Snapshot()}

	case models.ModeOnline:
		products, err := query.Fetch(ctx, r.query, cache.ProductsKey, r.remote.List)
		metrics.ObserveOperation("list", string(mode), err)
		if err != nil {
			r.report("list", err)
			return models.ListResult{Data: []models.Product{}, IsError: true, Err: err}
		}
		return models.ListResult{Data: withCents(products)}

	default:
		return models.ListResult{Data: []models.Product{}, IsLoading: true}
	}
}

// Peek never blocks on the network. Online, it serves the last fetched list
// and starts a background refresh when that list is missing or stale.
func (r *Repository) Peek(ctx context.Context) models.ListResult {
	mode := r.state.Mode()

	switch mode {
	case models.ModeOffline:
		return models.ListResult{Data: r.offline.Snapshot()}

	case models.ModeOnline:
		products, found, err := query.Peek[[]models.Product](ctx, r.query, cache.ProductsKey)
		if err != nil {
			r.logger.Warn("Failed to peek product list", slog.Any("error", err))
		}

		fetching := r.query.IsFetching(cache.ProductsKey)
		if !fetching && !r.query.IsFresh(cache.ProductsKey) {
			fetching = true
			go r.List(context.WithoutCancel(ctx))
		}

		if found {
			products = withCents(products)
		} else {
			products = []models.Product{}
		}

		fetchErr := r.query.Err(cache.ProductsKey)

		return models.ListResult{
			Data:      products,
			IsLoading: fetching && !found,
			IsError:   fetchErr != nil && !found,
			Err:       fetchErr,
		}

	default:
		return models.ListResult{Data: []models.Product{}, IsLoading: true}
	}
}

func (r *Repository) Get(ctx context.Context, id int64) (models.Product, error) {
	mode := r.state.Mode()

	var (
		product models.Product
		err     error
	)

	switch mode {
	case models.ModeOffline:
		product, err = r.offline.Get(id)
	case models.ModeOnline:
		product, err = r.remote.Get(ctx, id)
	default:
		err = appErrors.UnavailableError(msgModeUnknown)
	}

	metrics.ObserveOperation("get", string(mode), err)

	return product, err
}

// Create sanitises and validates req before any store sees it.
func (r *Repository) Create(ctx context.Context, req *models.CreateProductRequest) (models.Product, error) {
	in := *req
	utils.SanitizeCreate(&in)
	in.Price = in.Price.Round(2)

	if err := utils.ValidateStruct(r.validate, &in); err != nil {
		return models.Product{}, r.fail("create", r.state.Mode(), err)
	}

	mode := r.state.Mode()

	var (
		product models.Product
		err     error
	)

	switch mode {
	case models.ModeOffline:
		product, err = r.offline.Add(ctx, &in)
	case models.ModeOnline:
		if product, err = r.remote.Create(ctx, &in); err == nil {
			r.invalidate(ctx)
		}
	default:
		err = appErrors.UnavailableError(msgModeUnknown)
	}

	if err != nil {
		return models.Product{}, r.fail("create", mode, err)
	}

	r.succeed("create", mode, MsgCreated)

	return product, nil
}

// Update applies the non-nil fields of req to the product with the given id.
func (r *Repository) Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (models.Product, error) {
	in := *req
	utils.SanitizeUpdate(&in)
	if in.Price != nil {
		rounded := in.Price.Round(2)
		in.Price = &rounded
	}

	if err := utils.ValidateStruct(r.validate, &in); err != nil {
		return models.Product{}, r.fail("update", r.state.Mode(), err)
	}

	mode := r.state.Mode()

	var (
		product models.Product
		err     error
	)

	switch mode {
	case models.ModeOffline:
		product, err = r.offline.Update(ctx, id, &in)
	case models.ModeOnline:
		if product, err = r.remote.Update(ctx, id, &in); err == nil {
			r.invalidate(ctx)
		}
	default:
		err = appErrors.UnavailableError(msgModeUnknown)
	}

	if err != nil {
		return models.Product{}, r.fail("update", mode, err)
	}

	r.succeed("update", mode, MsgUpdated)

	return product, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	mode := r.state.Mode()

	var err error

	switch mode {
	case models.ModeOffline:
		err = r.offline.Remove(ctx, id)
	case models.ModeOnline:
		if err = r.remote.Delete(ctx, id); err == nil {
			r.invalidate(ctx)
		}
	default:
		err = appErrors.UnavailableError(msgModeUnknown)
	}

	if err != nil {
		return r.fail("delete", mode, err)
	}

	r.succeed("delete", mode, MsgDeleted)

	return nil
}

// invalidate drops the cached product list so the next read refetches it.
func (r *Repository) invalidate(ctx context.Context) {
	if err := r.query.Invalidate(ctx, cache.ProductsKey); err != nil {
		r.logger.Warn("Failed to invalidate product list", slog.Any("error", err))
	}
}

func (r *Repository) succeed(operation string, mode models.Mode, message string) {
	metrics.ObserveOperation(operation, string(mode), nil)
	r.logger.Debug("Repository operation succeeded",
		slog.String("operation", operation),
		slog.String("mode", string(mode)),
	)
	r.notifier.Success(message)
}

// fail records a failed operation. An offline lookup of a missing id is
// returned without a notification; the caller decides whether to surface it.
func (r *Repository) fail(operation string, mode models.Mode, err error) error {
	metrics.ObserveOperation(operation, string(mode), err)
	if mode == models.ModeOffline && appErrors.HasCode(err, appErrors.ErrCodeNotFound) {
		r.log(operation, err)
		return err
	}
	r.report(operation, err)
	return err
}

func (r *Repository) report(operation string, err error) {
	r.log(operation, err)
	r.notifier.Error(err.Error())
}

func (r *Repository) log(operation string, err error) {
	r.logger.Warn("Repository operation failed",
		slog.String("operation", operation),
		slog.String("mode", string(r.state.Mode())),
		slog.Any("error", err),
	)
}

// withCents copies products with prices at two decimal places. Values read
// back from the cache lose trailing zeros in the JSON round trip.
func withCents(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		p.Price = p.Price.Round(2)
		out[i] = p
	}
	return out
}
