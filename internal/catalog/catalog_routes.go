package catalog

import (
	"context"
	"time"

	"go-erp/internal/apiclient"
	"go-erp/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func (h *Handler[T]) RegisterRoutes(
	r *gin.RouterGroup,
	rbacService middleware.RBACService,
	authMW gin.HandlerFunc,
) {
	name := h.resource.Name
	g := r.Group(h.resource.Path)

	g.Use(authMW)

	{
		g.GET("", middleware.RBACAuthorize(rbacService, name, "read"), h.List)
		g.POST("", middleware.RBACAuthorize(rbacService, name, "create"), h.Create)
		g.GET("/:id", middleware.RBACAuthorize(rbacService, name, "read"), h.GetByID)
		g.PUT("/:id", middleware.RBACAuthorize(rbacService, name, "update"), h.Update)
		g.DELETE("/:id", middleware.RBACAuthorize(rbacService, name, "delete"), h.Delete)

		for _, action := range h.resource.Actions {
			g.POST("/:id/"+action, middleware.RBACAuthorize(rbacService, name, action), h.Action(action))
		}
	}
}

// Module is one wired resource, erased of its record type so the app can
// hold all of them in a slice.
type Module interface {
	Name() string
	RegisterRoutes(r *gin.RouterGroup, rbacService middleware.RBACService, authMW gin.HandlerFunc)
	Invalidate(ctx context.Context) error
}

type module[T Record[T]] struct {
	*Handler[T]
}

func (m module[T]) Name() string { return m.resource.Name }

func (m module[T]) Invalidate(ctx context.Context) error { return m.service.Invalidate(ctx) }

func NewModule[T Record[T]](
	resource Resource[T],
	client *apiclient.Client,
	rdb *redis.Client,
	ttl time.Duration,
	logger *zap.Logger,
) Module {
	svc := NewService(resource, client, rdb, ttl, logger)
	return module[T]{Handler: NewHandler(resource, svc, logger)}
}

func Modules(client *apiclient.Client, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) []Module {
	return []Module{
		NewModule(RoleResource, client, rdb, ttl, logger),
		NewModule(PositionResource, client, rdb, ttl, logger),
		NewModule(DepartmentResource, client, rdb, ttl, logger),
		NewModule(RegionResource, client, rdb, ttl, logger),
		NewModule(TaxRateResource, client, rdb, ttl, logger),
		NewModule(CategoryResource, client, rdb, ttl, logger),
		NewModule(KPIResource, client, rdb, ttl, logger),
		NewModule(KPIRecordResource, client, rdb, ttl, logger),
		NewModule(QuoteResource, client, rdb, ttl, logger),
		NewModule(ContractResource, client, rdb, ttl, logger),
	}
}

// Find returns the module registered under name.
func Find(modules []Module, name string) (Module, bool) {
	for _, m := range modules {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}
