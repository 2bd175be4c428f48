package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/http/middleware"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/modules/sections"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/shared/apperr"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/state"
)

type SectionsHandler struct {
	svc      *sections.Service
	sessions middleware.SessionCfg
}

func NewSectionsHandler(svc *sections.Service, sessions middleware.SessionCfg) *SectionsHandler {
	return &SectionsHandler{svc: svc, sessions: sessions}
}

func (h *SectionsHandler) List(c *gin.Context) {
	st := state.NewStore(sections.NewState(), sections.Reduce)
	if err := h.svc.LoadList(c.Request.Context(), st, middleware.CurrentSession(c)); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *SectionsHandler) Create(c *gin.Context) { h.save(c, "") }
func (h *SectionsHandler) Update(c *gin.Context) { h.save(c, c.Param("id")) }

func (h *SectionsHandler) save(c *gin.Context, sectionID string) {
	var in sections.SectionInput
	if err := c.ShouldBind(&in); err != nil {
		bindFailed(c, err, &in)
		return
	}

	st := state.NewStore(sections.NewState(), sections.Reduce)
	if err := h.svc.Save(c.Request.Context(), st, middleware.CurrentSession(c), sectionID, in); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *SectionsHandler) Delete(c *gin.Context) {
	st := state.NewStore(sections.NewState(), sections.Reduce)
	if err := h.svc.Delete(c.Request.Context(), st, middleware.CurrentSession(c), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}
