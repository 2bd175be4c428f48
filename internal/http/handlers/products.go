package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/http/middleware"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/modules/products"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/pagination"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/shared/apperr"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/state"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/storage"
)

type ProductsHandler struct {
	svc      *products.Service
	sessions middleware.SessionCfg
	staging  storage.Storage
}

func NewProductsHandler(svc *products.Service, sessions middleware.SessionCfg, staging storage.Storage) *ProductsHandler {
	return &ProductsHandler{svc: svc, sessions: sessions, staging: staging}
}

// List serves the product list page state. The free-text page input is
// validated against the page bounds the client reports.
func (h *ProductsHandler) List(c *gin.Context) {
	// totalPages is whatever the client last rendered; it bounds the
	// free-text page input rather than being validated against itself.
	total, err := strconv.Atoi(c.Query("totalPages"))
	if err != nil || total < 1 {
		total = 1
	}
	cur := pagination.ValidateInput(c.Query("currentPage"), 1, total)
	page := pagination.ValidateInput(c.Query("page"), cur, total)
	search := c.Query("search")

	st := state.NewStore(products.NewListState(), products.ReduceList)
	if err := h.svc.LoadList(c.Request.Context(), st, middleware.CurrentSession(c), page, search); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	st := state.NewStore(products.NewListState(), products.ReduceList)
	if err := h.svc.Delete(c.Request.Context(), st, middleware.CurrentSession(c), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

// New serves the empty save-product form: just the type list with its
// default selection.
func (h *ProductsHandler) New(c *gin.Context) {
	st := state.NewStore(products.NewSaveState(), products.ReduceSave)
	if err := h.svc.LoadTypes(c.Request.Context(), st, middleware.CurrentSession(c)); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *ProductsHandler) Get(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	st := state.NewStore(products.NewSaveState(), products.ReduceSave)

	if err := h.svc.LoadTypes(c.Request.Context(), st, sess); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	if cur := st.State(); cur.IsUnauthorized || cur.IsServerError {
		respondPage(c, h.sessions, cur, cur.Page)
		return
	}

	if err := h.svc.Load(c.Request.Context(), st, sess, c.Param("id")); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *ProductsHandler) Create(c *gin.Context) { h.save(c, "") }
func (h *ProductsHandler) Update(c *gin.Context) { h.save(c, c.Param("id")) }

func (h *ProductsHandler) save(c *gin.Context, productID string) {
	var values products.FormValues
	if err := c.ShouldBind(&values); err != nil {
		bindFailed(c, err, &values)
		return
	}

	uploads, previews, closeFiles, err := h.collectUploads(c)
	defer closeFiles()
	if err != nil {
		middleware.Fail(c, uploadErr(err))
		return
	}

	st := state.NewStore(products.NewSaveState(), products.ReduceSave)
	// Seed the submitted values so a backend rejection answers with the
	// form intact instead of an empty one.
	if err := st.Dispatch(products.Loaded{Product: products.Product{
		ID:          productID,
		Name:        values.Name,
		Type:        values.Type,
		Price:       values.Price,
		Quantity:    values.Quantity,
		Description: values.Description,
	}}); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if err := h.svc.Save(c.Request.Context(), st, middleware.CurrentSession(c), productID, values, uploads); err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}

	cur := st.State()
	switch {
	case cur.IsUnauthorized || cur.IsServerError:
		respondPage(c, h.sessions, cur, cur.Page)
	default:
		c.JSON(http.StatusOK, gin.H{"state": cur, "previews": previews})
	}
}

func (h *ProductsHandler) DeleteImage(c *gin.Context) {
	st := state.NewStore(products.NewSaveState(), products.ReduceSave)
	err := h.svc.DeleteImage(c.Request.Context(), st, middleware.CurrentSession(c), c.Param("id"), c.Param("slot"))
	if err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}
	respondPage(c, h.sessions, st.State(), st.State().Page)
}

// collectUploads opens each provided image slot twice: one copy is
// staged for the preview URL, the other goes to the backend multipart.
// The caller must call closeFiles once the backend request finished.
func (h *ProductsHandler) collectUploads(c *gin.Context) (uploads []products.Upload, previews map[string]string, closeFiles func(), err error) {
	uploads = make([]products.Upload, 0, len(products.ImageSlots))
	previews = map[string]string{}

	files := make([]multipart.File, 0, len(products.ImageSlots))
	closeFiles = func() {
		for _, f := range files {
			f.Close()
		}
	}

	for _, slot := range products.ImageSlots {
		fh, err := c.FormFile(slot)
		if err != nil {
			continue // slot not submitted
		}

		url, err := stagePreview(c, h.staging, fh)
		if err != nil {
			return nil, nil, closeFiles, err
		}
		previews[slot] = url

		f, err := fh.Open()
		if err != nil {
			return nil, nil, closeFiles, err
		}
		files = append(files, f)
		uploads = append(uploads, products.Upload{
			Slot:        slot,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        f,
		})
	}

	return uploads, previews, closeFiles, nil
}

func stagePreview(c *gin.Context, staging storage.Storage, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	res, err := staging.Put(c.Request.Context(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		return "", err
	}
	return res.URL, nil
}
