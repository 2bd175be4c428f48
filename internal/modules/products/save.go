package products

import "github.com/tHeather/shop-frontend-cms-sub000/internal/state"

// Image slot names shared with the backend's multipart contract.
const (
	SlotFirstImage  = "firstImage"
	SlotSecondImage = "secondImage"
	SlotThirdImage  = "thirdImage"
)

var ImageSlots = []string{SlotFirstImage, SlotSecondImage, SlotThirdImage}

// FormValues are the editable product fields. They survive a 400 so
// the user can correct input and resubmit.
type FormValues struct {
	Name        string `json:"name" form:"name" binding:"required,max=100"`
	Type        string `json:"type" form:"type" binding:"required"`
	Price       string `json:"price" form:"price" binding:"required"`
	Quantity    int    `json:"quantity" form:"quantity" binding:"gte=0"`
	Description string `json:"description" form:"description" binding:"max=2000"`
}

type SaveState struct {
	state.Page
	ProductID   string            `json:"productId,omitempty"`
	FormValues  FormValues        `json:"formValues"`
	SavedImages map[string]string `json:"savedImages"`
	Types       []string          `json:"types"`
	IsNotFound  bool              `json:"isNotFound,omitempty"`
}

func NewSaveState() SaveState {
	return SaveState{SavedImages: map[string]string{}}
}

// TypesLoaded carries the product type list. NewTypesLoaded also picks
// types[0] as the initially selected type; the default-selection
// policy lives in the creator, not the reducer.
type TypesLoaded struct {
	state.ActionBase
	Types    []string
	Selected string
}

func NewTypesLoaded(types []string) TypesLoaded {
	selected := ""
	if len(types) > 0 {
		selected = types[0]
	}
	return TypesLoaded{Types: types, Selected: selected}
}

// Loaded carries a fetched product into the form.
type Loaded struct {
	state.ActionBase
	Product Product
}

// Saved is the terminal for a successful create/update.
type Saved struct {
	state.ActionBase
	ProductID string
	Images    map[string]string
	Message   string
}

// SaveRejected is the 400 terminal: errors surface, form values stay,
// image fields reset because uploaded files cannot be round-tripped
// back into the file input.
type SaveRejected struct {
	state.ActionBase
	Errors []string
}

// Missing is the 404 terminal; the page offers "back to list" instead
// of a retry.
type Missing struct{ state.ActionBase }

// ImageDeleted clears one image slot.
type ImageDeleted struct {
	state.ActionBase
	Slot string
}

func ReduceSave(s SaveState, act state.Action) (SaveState, error) {
	switch a := act.(type) {
	case TypesLoaded:
		s.Types = append([]string(nil), a.Types...)
		if s.FormValues.Type == "" {
			s.FormValues.Type = a.Selected
		}
		s.IsLoading = false
		return s, nil
	case Loaded:
		s.ProductID = a.Product.ID
		s.FormValues = FormValues{
			Name:        a.Product.Name,
			Type:        a.Product.Type,
			Price:       a.Product.Price,
			Quantity:    a.Product.Quantity,
			Description: a.Product.Description,
		}
		s.SavedImages = map[string]string{
			SlotFirstImage:  a.Product.FirstImage,
			SlotSecondImage: a.Product.SecondImage,
			SlotThirdImage:  a.Product.ThirdImage,
		}
		s.IsNotFound = false
		s.IsLoading = false
		return s, nil
	case Saved:
		s.ProductID = a.ProductID
		s.SavedImages = copyImages(a.Images)
		s.ActiveModalText = a.Message
		s.IsLoading = false
		return s, nil
	case SaveRejected:
		s.ErrorsList = append([]string(nil), a.Errors...)
		s.SavedImages = map[string]string{}
		s.IsLoading = false
		return s, nil
	case Missing:
		s.IsNotFound = true
		s.IsLoading = false
		return s, nil
	case ImageDeleted:
		s.SavedImages = copyImages(s.SavedImages)
		s.SavedImages[a.Slot] = ""
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
