// Package settings drives the shop-wide configuration pages: shop
// settings, footer, slider and theme.
package settings

import "github.com/tHeather/shop-frontend-cms-sub000/internal/state"

// ShopSettings are the shop-wide values the backend exposes.
type ShopSettings struct {
	Name        string `json:"name" form:"name" binding:"required,max=100"`
	Email       string `json:"email" form:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" binding:"max=30"`
	Currency    string `json:"currency" form:"currency" binding:"required,max=5"`
}

type ShopState struct {
	state.Page
	Settings ShopSettings `json:"settings"`
}

func NewShopState() ShopState { return ShopState{} }

type ShopLoaded struct {
	state.ActionBase
	Settings ShopSettings
}

type ShopSaved struct {
	state.ActionBase
	Settings ShopSettings
}

func ReduceShop(s ShopState, act state.Action) (ShopState, error) {
	switch a := act.(type) {
	case ShopLoaded:
		s.Settings = a.Settings
		s.IsLoading = false
		return s, nil
	case ShopSaved:
		s.Settings = a.Settings
		s.ActiveModalText = "Shop settings have been saved."
		s.IsLoading = false
		return s, nil
	default:
		p, ok := state.ApplyGlobal(s.Page, act)
		if !ok {
			return s, state.Unhandled(act)
		}
		s.Page = p
		return s, nil
	}
}

// Footer is the footer content block.
type Footer struct {
	Text        string `json:"text" form:"text" binding:"max=500"`
	Email       string `json:"email" form:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" binding:"max=30"`
}

type FooterState struct {
	state.Page
	Footer Footer `json:"footer"`
}

func NewFooterState() FooterState { return FooterState{} }

type FooterLoaded struct {
	state.ActionBase
	Footer Footer
}

type FooterSaved struct {
	state.ActionBase
	Footer Footer
}

func ReduceFooter(s FooterState, act state.Action) (FooterState, error) {
	switch a := act.(type) {
	case FooterLoaded:
		s.Footer = a.Footer
		s.IsLoading = false
		return s, nil
	case FooterSaved:
		s.Footer = a.Footer
		s.ActiveModalText = "Footer has been saved."
		s.IsLoading = false
		return s, nil
	default:
		p, ok := state.ApplyGlobal(s.Page, act)
		if !ok {
			return s, state.Unhandled(act)
		}
		s.Page = p
		return s, nil
	}
}

// Slider slots reuse the image slot contract of the product page.
const (
	SlotFirstImage  = "firstImage"
	SlotSecondImage = "secondImage"
	SlotThirdImage  = "thirdImage"
)

type SliderState struct {
	state.Page
	Images map[string]string `json:"images"`
}

func NewSliderState() SliderState {
	return SliderState{Images: map[string]string{}}
}

type SliderLoaded struct {
	state.ActionBase
	Images map[string]string
}

type SliderSaved struct {
	state.ActionBase
	Images map[string]string
}

// SliderRejected resets image fields on 400: uploaded files cannot be
// round-tripped back into the file input.
type SliderRejected struct {
	state.ActionBase
	Errors []string
}

func ReduceSlider(s SliderState, act state.Action) (SliderState, error) {
	switch a := act.(type) {
	case SliderLoaded:
		s.Images = copyImages(a.Images)
		s.IsLoading = false
		return s, nil
	case SliderSaved:
		s.Images = copyImages(a.Images)
		s.ActiveModalText = "Slider has been saved."
		s.IsLoading = false
		return s, nil
	case SliderRejected:
		s.ErrorsList = append([]string(nil), a.Errors...)
		s.Images = map[string]string{}
		s.IsLoading = false
		return s, nil
	default:
		p, ok := state.ApplyGlobal(s.Page, act)
		if !ok {
			return s, state.Unhandled(act)
		}
		s.Page = p
		return s, nil
	}
}

// ThemeState drives the shop-wide theme picker.
type ThemeState struct {
	state.Page
	Themes   []string `json:"themes"`
	Selected string   `json:"selected"`
}

func NewThemeState() ThemeState { return ThemeState{} }

type ThemesLoaded struct {
	state.ActionBase
	Themes   []string
	Selected string
}

type ThemeSaved struct {
	state.ActionBase
	Selected string
}

func ReduceTheme(s ThemeState, act state.Action) (ThemeState, error) {
	switch a := act.(type) {
	case ThemesLoaded:
		s.Themes = append([]string(nil), a.Themes...)
		s.Selected = a.Selected
		s.IsLoading = false
		return s, nil
	case ThemeSaved:
		s.Selected = a.Selected
		s.ActiveModalText = "Theme has been saved."
		s.IsLoading = false
		return s, nil
	default:
		p, ok := state.ApplyGlobal(s.Page, act)
		if !ok {
			return s, state.Unhandled(act)
		}
		s.Page = p
		return s, nil
	}
}

func copyImages(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
