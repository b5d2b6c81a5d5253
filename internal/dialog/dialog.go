package dialog

// State is the single source of truth for what a page is editing. A nil
// Entity means the dialog creates.
type State[T any] struct {
	Open   bool
	Entity *T
}

func (s *State[T]) OpenCreate() {
	s.Open, s.Entity = true, nil
}

func (s *State[T]) OpenEdit(e T) {
	s.Open, s.Entity = true, &e
}

// Close resets the dialog however it was dismissed.
func (s *State[T]) Close() {
	*s = State[T]{}
}

func (s *State[T]) IsEdit() bool {
	return s.Open && s.Entity != nil
}

// Page bundles the dialog with where to return when it closes.
type Page[T any] struct {
	Dialog   State[T]
	ReturnTo string
}

// CloseURL closes the dialog and returns the list URL to redirect to.
func (p *Page[T]) CloseURL() string {
	p.Dialog.Close()
	return p.ReturnTo
}
