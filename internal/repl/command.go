package repl

import "fmt"

// Command is one parsed REPL instruction.
type Command interface {
	command()
}

// Bound is an optional range endpoint.
type Bound struct {
	Value float64
	Set   bool
}

// Fixed returns a set bound.
func Fixed(v float64) Bound {
	return Bound{Value: v, Set: true}
}

type (
	// SetCenter moves the envelope center.
	SetCenter struct{ Value float64 }
	// SetWidth changes the envelope standard deviation.
	SetWidth struct{ Value float64 }
	// SetCount changes the number of component waves.
	SetCount struct{ Value int }
	// SetKRange updates either or both k view bounds.
	SetKRange struct{ Low, High Bound }
	// SetXRange updates either or both x view bounds.
	SetXRange struct{ Low, High Bound }
	// Render computes and presents the current transformation.
	Render struct{}
	// Export computes the current transformation and writes it to Path.
	Export struct{ Path string }
	// Help prints the command reference.
	Help struct{}
	// Quit ends the session.
	Quit struct{}
	// Invalid is a token that could not be interpreted.
	Invalid struct {
		Token string
		Err   error
	}
)

func (SetCenter) command() {}
func (SetWidth) command()  {}
func (SetCount) command()  {}
func (SetKRange) command() {}
func (SetXRange) command() {}
func (Render) command()    {}
func (Export) command()    {}
func (Help) command()      {}
func (Quit) command()      {}
func (Invalid) command()   {}

func (i Invalid) Error() string {
	return fmt.Sprintf("%q: %v", i.Token, i.Err)
}
