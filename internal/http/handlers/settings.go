package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/http/middleware"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/modules/settings"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/shared/apperr"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/state"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/storage"
)

type SettingsHandler struct {
	svc      *settings.Service
	sessions middleware.SessionCfg
	staging  storage.Storage
}

func NewSettingsHandler(svc *settings.Service, sessions middleware.SessionCfg, staging storage.Storage) *SettingsHandler {
	return &SettingsHandler{svc: svc, sessions: sessions, staging: staging}
}

func (h *SettingsHandler) GetShop(c *gin.Context) {
	st := state.NewStore(settings.NewShopState(), settings.ReduceShop)
	if err := h.svc.LoadShop(c.Request.Context(), st, middleware.CurrentSession(c)); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *SettingsHandler) SaveShop(c *gin.Context) {
	var in settings.ShopSettings
	if err := c.ShouldBind(&in); err != nil {
		bindFailed(c, err, &in)
		return
	}

	st := state.NewStore(settings.NewShopState(), settings.ReduceShop)
	if err := h.svc.SaveShop(c.Request.Context(), st, middleware.CurrentSession(c), in); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *SettingsHandler) GetFooter(c *gin.Context) {
	st := state.NewStore(settings.NewFooterState(), settings.ReduceFooter)
	if err := h.svc.LoadFooter(c.Request.Context(), st, middleware.CurrentSession(c)); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *SettingsHandler) SaveFooter(c *gin.Context) {
	var in settings.Footer
	if err := c.ShouldBind(&in); err != nil {
		bindFailed(c, err, &in)
		return
	}

	st := state.NewStore(settings.NewFooterState(), settings.ReduceFooter)
	if err := h.svc.SaveFooter(c.Request.Context(), st, middleware.CurrentSession(c), in); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *SettingsHandler) GetSlider(c *gin.Context) {
	st := state.NewStore(settings.NewSliderState(), settings.ReduceSlider)
	if err := h.svc.LoadSlider(c.Request.Context(), st, middleware.CurrentSession(c)); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *SettingsHandler) SaveSlider(c *gin.Context) {
	slots := []string{settings.SlotFirstImage, settings.SlotSecondImage, settings.SlotThirdImage}

	uploads := make([]settings.Upload, 0, len(slots))
	previews := map[string]string{}

	files := make([]multipart.File, 0, len(slots))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	for _, slot := range slots {
		fh, err := c.FormFile(slot)
		if err != nil {
			continue
		}

		url, err := stagePreview(c, h.staging, fh)
		if err != nil {
			middleware.Fail(c, uploadErr(err))
			return
		}
		previews[slot] = url

		f, err := fh.Open()
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		files = append(files, f)
		uploads = append(uploads, settings.Upload{
			Slot:        slot,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        f,
		})
	}

	st := state.NewStore(settings.NewSliderState(), settings.ReduceSlider)
	if err := h.svc.SaveSlider(c.Request.Context(), st, middleware.CurrentSession(c), uploads); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}

	cur := st.State()
	if cur.IsUnauthorized || cur.IsServerError {
		respondPage(c, h.sessions, cur, cur.Page)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": cur, "previews": previews})
}

func (h *SettingsHandler) GetTheme(c *gin.Context) {
	st := state.NewStore(settings.NewThemeState(), settings.ReduceTheme)
	if err := h.svc.LoadThemes(c.Request.Context(), st, middleware.CurrentSession(c)); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

type themeInput struct {
	Theme string `json:"theme" form:"theme" binding:"required,max=50"`
}

func (h *SettingsHandler) SaveTheme(c *gin.Context) {
	var in themeInput
	if err := c.ShouldBind(&in); err != nil {
		bindFailed(c, err, &in)
		return
	}

	st := state.NewStore(settings.NewThemeState(), settings.ReduceTheme)
	if err := h.svc.SaveTheme(c.Request.Context(), st, middleware.CurrentSession(c), in.Theme); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}
