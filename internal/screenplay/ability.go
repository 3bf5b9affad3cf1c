// internal/screenplay/ability.go
package screenplay

// AbilityKind tags a capability. An actor holds at most one ability per kind.
type AbilityKind string

// KindBrowseTheWeb is the kind of the BrowseTheWeb ability.
const KindBrowseTheWeb AbilityKind = "browse the web"

// Ability is a capability an Actor can hold. Abilities carry no behaviour of
// their own; they make an external handle reachable through the actor.
type Ability interface {
	Kind() AbilityKind
}

// BrowseTheWeb makes a browser Driver available to an actor.
type BrowseTheWeb struct {
	driver Driver
}

// BrowseTheWebWith binds driver to a new BrowseTheWeb ability.
func BrowseTheWebWith(driver Driver) *BrowseTheWeb {
	return &BrowseTheWeb{driver: driver}
}

func (b *BrowseTheWeb) Kind() AbilityKind { return KindBrowseTheWeb }

// Driver returns the wrapped driver handle.
func (b *BrowseTheWeb) Driver() Driver { return b.driver }

// AbilityTo returns the actor's ability of the given kind, typed as A.
// It fails with a *MissingAbilityError when the actor has no such ability or
// the registered ability is not an A.
func AbilityTo[A Ability](actor *Actor, kind AbilityKind) (A, error) {
	var zero A
	ability, ok := actor.ability(kind)
	if !ok {
		return zero, &MissingAbilityError{Actor: actor.Name(), Kind: kind}
	}
	typed, ok := ability.(A)
	if !ok {
		return zero, &MissingAbilityError{Actor: actor.Name(), Kind: kind}
	}
	return typed, nil
}

// BrowserOf returns the driver of the actor's BrowseTheWeb ability.
func BrowserOf(actor *Actor) (Driver, error) {
	b, err := AbilityTo[*BrowseTheWeb](actor, KindBrowseTheWeb)
	if err != nil {
		return nil, err
	}
	if b.Driver() == nil {
		return nil, &MissingAbilityError{Actor: actor.Name(), Kind: KindBrowseTheWeb}
	}
	return b.Driver(), nil
}
