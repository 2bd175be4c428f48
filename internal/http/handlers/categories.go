package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/http/middleware"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/modules/categories"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/shared/apperr"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/state"
)

type CategoriesHandler struct {
	svc      *categories.Service
	sessions middleware.SessionCfg
}

func NewCategoriesHandler(svc *categories.Service, sessions middleware.SessionCfg) *CategoriesHandler {
	return &CategoriesHandler{svc: svc, sessions: sessions}
}

// categoryInput deliberately has no required tag on the title: the
// save guard decides whether anything is sent upstream, and a guarded
// no-op answers with the untouched state, mirroring a disabled button.
type categoryInput struct {
	Title string   `json:"title" form:"title" binding:"max=100"`
	Types []string `json:"types" form:"types[]"`
}

func (h *CategoriesHandler) Page(c *gin.Context) {
	st := state.NewStore(categories.NewState(), categories.Reduce)
	if err := h.svc.LoadPage(c.Request.Context(), st, middleware.CurrentSession(c)); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *CategoriesHandler) Get(c *gin.Context) {
	st := state.NewStore(categories.NewState(), categories.Reduce)
	if err := h.svc.Load(c.Request.Context(), st, middleware.CurrentSession(c), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *CategoriesHandler) Create(c *gin.Context) { h.save(c, "") }
func (h *CategoriesHandler) Update(c *gin.Context) { h.save(c, c.Param("id")) }

func (h *CategoriesHandler) save(c *gin.Context, categoryID string) {
	var in categoryInput
	if err := c.ShouldBind(&in); err != nil {
		bindFailed(c, err, &in)
		return
	}

	st := state.NewStore(categories.NewState(), categories.Reduce)
	if err := st.Dispatch(categories.Loaded{Category: categories.Category{
		ID:    categoryID,
		Title: in.Title,
		Types: in.Types,
	}}); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if err := h.svc.Save(c.Request.Context(), st, middleware.CurrentSession(c)); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *CategoriesHandler) Delete(c *gin.Context) {
	st := state.NewStore(categories.NewState(), categories.Reduce)
	if err := h.svc.Delete(c.Request.Context(), st, middleware.CurrentSession(c), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}
