package products

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/api"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/session"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/state"
)

type Service struct {
	api *api.Client
	log *slog.Logger
}

func NewService(client *api.Client, log *slog.Logger) *Service {
	return &Service{api: client, log: log}
}

type listResponse struct {
	Result     []Product `json:"result"`
	TotalPages int       `json:"totalPages"`
}

// Upload is one file taken from the admin's multipart submission.
type Upload struct {
	Slot        string
	Filename    string
	ContentType string
	Data        io.Reader
}

// LoadList fetches one page of products.
func (s *Service) LoadList(ctx context.Context, st *state.Store[ListState], sess *session.Session, page int, search string) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if search != "" {
		q.Set("search", search)
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/api/products",
		Query:  q,
		Token:  sess.Token,
	})
	if err != nil {
		return err
	}

	switch out := api.Classify(res).(type) {
	case api.Success:
		var body listResponse
		if err := out.Decode(&body); err != nil {
			return err
		}
		_, err := st.DispatchAt(gen, ListLoaded{
			Products:   body.Result,
			TotalPages: body.TotalPages,
			PageNumber: page,
			Search:     search,
		})
		return err
	case api.Invalid:
		_, err := st.DispatchAt(gen, state.SetErrorModalMessage{Errors: out.Errors})
		return err
	case api.Unauthorized:
		_, err := st.DispatchAt(gen, state.Unauthorized{})
		return err
	case api.NotFound:
		// An empty page is a 200 with an empty result; a 404 here
		// means the list route itself is gone.
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.ServerFailure:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.Unknown:
		s.logUnknown(ctx, "load_product_list", out.Status)
		return nil
	}
	return nil
}

// Delete removes a product from the list page.
func (s *Service) Delete(ctx context.Context, st *state.Store[ListState], sess *session.Session, productID string) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   "/api/products/" + productID,
		Token:  sess.Token,
	})
	if err != nil {
		return err
	}

	switch out := api.Classify(res).(type) {
	case api.Success:
		_, err := st.DispatchAt(gen, Deleted{})
		return err
	case api.Invalid:
		_, err := st.DispatchAt(gen, state.SetErrorModalMessage{Errors: out.Errors})
		return err
	case api.Unauthorized:
		_, err := st.DispatchAt(gen, state.Unauthorized{})
		return err
	case api.NotFound:
		// Already gone; treat as deleted so the list refreshes.
		_, err := st.DispatchAt(gen, Deleted{})
		return err
	case api.ServerFailure:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.Unknown:
		s.logUnknown(ctx, "delete_product", out.Status)
		return nil
	}
	return nil
}

// LoadTypes fetches the product type list for the save page.
func (s *Service) LoadTypes(ctx context.Context, st *state.Store[SaveState], sess *session.Session) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/api/products/types",
		Token:  sess.Token,
	})
	if err != nil {
		return err
	}

	switch out := api.Classify(res).(type) {
	case api.Success:
		var types []string
		if err := out.Decode(&types); err != nil {
			return err
		}
		_, err := st.DispatchAt(gen, NewTypesLoaded(types))
		return err
	case api.Invalid:
		_, err := st.DispatchAt(gen, state.SetErrorModalMessage{Errors: out.Errors})
		return err
	case api.Unauthorized:
		_, err := st.DispatchAt(gen, state.Unauthorized{})
		return err
	case api.NotFound:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.ServerFailure:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.Unknown:
		s.logUnknown(ctx, "load_product_types", out.Status)
		return nil
	}
	return nil
}

// Load fetches one product into the save form. A 404 sets the
// feature-local not-found flag instead of a generic error.
func (s *Service) Load(ctx context.Context, st *state.Store[SaveState], sess *session.Session, productID string) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/api/products/" + productID,
		Token:  sess.Token,
	})
	if err != nil {
		return err
	}

	switch out := api.Classify(res).(type) {
	case api.Success:
		var p Product
		if err := out.Decode(&p); err != nil {
			return err
		}
		_, err := st.DispatchAt(gen, Loaded{Product: p})
		return err
	case api.Invalid:
		_, err := st.DispatchAt(gen, state.SetErrorModalMessage{Errors: out.Errors})
		return err
	case api.Unauthorized:
		_, err := st.DispatchAt(gen, state.Unauthorized{})
		return err
	case api.NotFound:
		_, err := st.DispatchAt(gen, Missing{})
		return err
	case api.ServerFailure:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.Unknown:
		s.logUnknown(ctx, "load_product", out.Status)
		return nil
	}
	return nil
}

// Save creates or updates a product. The body is always multipart,
// even when no file changed, so callers never branch on file presence.
func (s *Service) Save(ctx context.Context, st *state.Store[SaveState], sess *session.Session, productID string, values FormValues, uploads []Upload) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	form := api.NewForm().
		Field("name", values.Name).
		Field("type", values.Type).
		Field("price", values.Price).
		Field("quantity", strconv.Itoa(values.Quantity)).
		Field("description", values.Description)
	for _, up := range uploads {
		if up.ContentType != "" {
			form.FileWithType(up.Slot, up.Filename, up.ContentType, up.Data)
		} else {
			form.File(up.Slot, up.Filename, up.Data)
		}
	}

	method := http.MethodPost
	path := "/api/products"
	if productID != "" {
		method = http.MethodPut
		path = "/api/products/" + productID
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: method,
		Path:   path,
		Token:  sess.Token,
		Form:   form,
	})
	if err != nil {
		return err
	}

	switch out := api.Classify(res).(type) {
	case api.Success:
		saved := Saved{ProductID: productID, Message: "Product has been saved."}
		var p Product
		if len(out.Body) > 0 && out.Decode(&p) == nil {
			if p.ID != "" {
				saved.ProductID = p.ID
			}
			saved.Images = map[string]string{
				SlotFirstImage:  p.FirstImage,
				SlotSecondImage: p.SecondImage,
				SlotThirdImage:  p.ThirdImage,
			}
		}
		_, err := st.DispatchAt(gen, saved)
		return err
	case api.Invalid:
		_, err := st.DispatchAt(gen, SaveRejected{Errors: out.Errors})
		return err
	case api.Unauthorized:
		_, err := st.DispatchAt(gen, state.Unauthorized{})
		return err
	case api.NotFound:
		_, err := st.DispatchAt(gen, Missing{})
		return err
	case api.ServerFailure:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.Unknown:
		s.logUnknown(ctx, "save_product", out.Status)
		return nil
	}
	return nil
}

// DeleteImage clears one image slot on the backend and in state.
func (s *Service) DeleteImage(ctx context.Context, st *state.Store[SaveState], sess *session.Session, productID, slot string) error {
	if !validSlot(slot) {
		return fmt.Errorf("unknown image slot %q", slot)
	}

	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   "/api/products/" + productID + "/images/" + slot,
		Token:  sess.Token,
	})
	if err != nil {
		return err
	}

	switch out := api.Classify(res).(type) {
	case api.Success:
		_, err := st.DispatchAt(gen, ImageDeleted{Slot: slot})
		return err
	case api.Invalid:
		_, err := st.DispatchAt(gen, state.SetErrorModalMessage{Errors: out.Errors})
		return err
	case api.Unauthorized:
		_, err := st.DispatchAt(gen, state.Unauthorized{})
		return err
	case api.NotFound:
		_, err := st.DispatchAt(gen, Missing{})
		return err
	case api.ServerFailure:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.Unknown:
		s.logUnknown(ctx, "delete_product_image", out.Status)
		return nil
	}
	return nil
}

func (s *Service) logUnknown(ctx context.Context, op string, status int) {
	s.log.DebugContext(ctx, "unhandled_status", slog.String("op", op), slog.Int("status", status))
}

func validSlot(slot string) bool {
	for _, s := range ImageSlots {
		if s == slot {
			return true
		}
	}
	return false
}
