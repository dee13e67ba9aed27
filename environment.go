package waypoint

import "strings"

// An Environment is a different context in which a waypoint app operates.
type Environment string

const (
	Demo        Environment = "DEMO"
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Review      Environment = "REVIEW"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

// NewEnvironment casts val into an Environment, ignoring case.
// If val is not a valid Environment, NewEnvironment returns def.
func NewEnvironment(val string, def Environment) Environment {
	env := Environment(strings.ToUpper(strings.TrimSpace(val)))
	if err := env.Valid(); err != nil {
		return def
	}

	return env
}

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Demo, Development, Production, Review, Staging, Testing:
		return nil
	default:
		return ErrNotValid
	}
}

func (e Environment) IsDevelopment() bool {
	return e == Development
}

func (e Environment) IsProduction() bool {
	return e == Production
}

func (e Environment) IsTesting() bool {
	return e == Testing
}
