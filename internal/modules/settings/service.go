package settings

import (
	"context"
	"io"
	"log/slog"
	"net/http"

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

// Upload is one slider image from the admin's multipart submission.
type Upload struct {
	Slot        string
	Filename    string
	ContentType string
	Data        io.Reader
}

type sliderResponse struct {
	FirstImage  string `json:"firstImage"`
	SecondImage string `json:"secondImage"`
	ThirdImage  string `json:"thirdImage"`
}

type themeResponse struct {
	Themes   []string `json:"themes"`
	Selected string   `json:"selected"`
}

func (s *Service) LoadShop(ctx context.Context, st *state.Store[ShopState], sess *session.Session) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{Method: http.MethodGet, Path: "/api/settings/shop", Token: sess.Token})
	if err != nil {
		return err
	}

	return terminal(ctx, s.log, st, gen, "load_shop_settings", res, func(out api.Success) (state.Action, error) {
		var v ShopSettings
		if err := out.Decode(&v); err != nil {
			return nil, err
		}
		return ShopLoaded{Settings: v}, nil
	})
}

func (s *Service) SaveShop(ctx context.Context, st *state.Store[ShopState], sess *session.Session, in ShopSettings) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{Method: http.MethodPut, Path: "/api/settings/shop", Token: sess.Token, JSON: in})
	if err != nil {
		return err
	}

	return terminal(ctx, s.log, st, gen, "save_shop_settings", res, func(api.Success) (state.Action, error) {
		return ShopSaved{Settings: in}, nil
	})
}

func (s *Service) LoadFooter(ctx context.Context, st *state.Store[FooterState], sess *session.Session) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{Method: http.MethodGet, Path: "/api/settings/footer", Token: sess.Token})
	if err != nil {
		return err
	}

	return terminal(ctx, s.log, st, gen, "load_footer", res, func(out api.Success) (state.Action, error) {
		var v Footer
		if err := out.Decode(&v); err != nil {
			return nil, err
		}
		return FooterLoaded{Footer: v}, nil
	})
}

func (s *Service) SaveFooter(ctx context.Context, st *state.Store[FooterState], sess *session.Session, in Footer) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{Method: http.MethodPut, Path: "/api/settings/footer", Token: sess.Token, JSON: in})
	if err != nil {
		return err
	}

	return terminal(ctx, s.log, st, gen, "save_footer", res, func(api.Success) (state.Action, error) {
		return FooterSaved{Footer: in}, nil
	})
}

func (s *Service) LoadSlider(ctx context.Context, st *state.Store[SliderState], sess *session.Session) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{Method: http.MethodGet, Path: "/api/settings/slider", Token: sess.Token})
	if err != nil {
		return err
	}

	return terminal(ctx, s.log, st, gen, "load_slider", res, func(out api.Success) (state.Action, error) {
		var v sliderResponse
		if err := out.Decode(&v); err != nil {
			return nil, err
		}
		return SliderLoaded{Images: imagesFromResponse(v)}, nil
	})
}

// SaveSlider always sends multipart, even when no slide changed.
func (s *Service) SaveSlider(ctx context.Context, st *state.Store[SliderState], sess *session.Session, uploads []Upload) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	form := api.NewForm()
	for _, up := range uploads {
		if up.ContentType != "" {
			form.FileWithType(up.Slot, up.Filename, up.ContentType, up.Data)
		} else {
			form.File(up.Slot, up.Filename, up.Data)
		}
	}

	res, err := s.api.Do(ctx, api.Request{Method: http.MethodPut, Path: "/api/settings/slider", Token: sess.Token, Form: form})
	if err != nil {
		return err
	}

	// The 400 branch clears image fields, so it needs the feature
	// action instead of the shared error modal.
	if out, ok := api.Classify(res).(api.Invalid); ok {
		_, err := st.DispatchAt(gen, SliderRejected{Errors: out.Errors})
		return err
	}

	return terminal(ctx, s.log, st, gen, "save_slider", res, func(out api.Success) (state.Action, error) {
		var v sliderResponse
		if len(out.Body) > 0 {
			if err := out.Decode(&v); err != nil {
				return nil, err
			}
		}
		return SliderSaved{Images: imagesFromResponse(v)}, nil
	})
}

func (s *Service) LoadThemes(ctx context.Context, st *state.Store[ThemeState], sess *session.Session) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{Method: http.MethodGet, Path: "/api/settings/theme", Token: sess.Token})
	if err != nil {
		return err
	}

	return terminal(ctx, s.log, st, gen, "load_themes", res, func(out api.Success) (state.Action, error) {
		var v themeResponse
		if err := out.Decode(&v); err != nil {
			return nil, err
		}
		return ThemesLoaded{Themes: v.Themes, Selected: v.Selected}, nil
	})
}

func (s *Service) SaveTheme(ctx context.Context, st *state.Store[ThemeState], sess *session.Session, theme string) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodPut,
		Path:   "/api/settings/theme",
		Token:  sess.Token,
		JSON:   map[string]string{"theme": theme},
	})
	if err != nil {
		return err
	}

	return terminal(ctx, s.log, st, gen, "save_theme", res, func(api.Success) (state.Action, error) {
		return ThemeSaved{Selected: theme}, nil
	})
}

// terminal maps a classified outcome onto exactly one dispatch for any
// settings page. The settings endpoints are singletons, so a 404 means
// a broken route, not a missing entity.
func terminal[S any](ctx context.Context, log *slog.Logger, st *state.Store[S], gen uint64, op string, res api.Response, onSuccess func(api.Success) (state.Action, error)) error {
	switch out := api.Classify(res).(type) {
	case api.Success:
		act, err := onSuccess(out)
		if err != nil {
			return err
		}
		_, err = st.DispatchAt(gen, act)
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
		log.DebugContext(ctx, "unhandled_status", slog.String("op", op), slog.Int("status", out.Status))
		return nil
	}
	return nil
}

func imagesFromResponse(v sliderResponse) map[string]string {
	return map[string]string{
		SlotFirstImage:  v.FirstImage,
		SlotSecondImage: v.SecondImage,
		SlotThirdImage:  v.ThirdImage,
	}
}
