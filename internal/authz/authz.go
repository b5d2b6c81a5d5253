package authz

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/rs/zerolog"
)

const (
	ActionEdit   = "edit"
	ActionDelete = "delete"
	AnyObject    = "*"
)

var ErrForbidden = errors.New("authz: forbidden")

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (p.obj == "*" || r.obj == p.obj) && r.act == p.act
`

// Enforcer decides which row affordances a role sees. The backend still
// has the final say on every write.
type Enforcer struct {
	mu  sync.RWMutex
	enf *casbin.Enforcer
	log zerolog.Logger
}

// New grants edit and delete on every object to each editor role.
func New(editorRoles []string, log zerolog.Logger) (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz: parse model: %w", err)
	}
	enf, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: init enforcer: %w", err)
	}

	for _, role := range editorRoles {
		role = strings.ToUpper(strings.TrimSpace(role))
		if role == "" {
			continue
		}
		for _, act := range []string{ActionEdit, ActionDelete} {
			if _, err := enf.AddPolicy(role, AnyObject, act); err != nil {
				return nil, fmt.Errorf("authz: add policy %s/%s: %w", role, act, err)
			}
		}
	}
	return &Enforcer{enf: enf, log: log.With().Str("component", "authz").Logger()}, nil
}

// Grant adds a single rule, for objects that need a narrower policy.
func (e *Enforcer) Grant(role, obj, act string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, err := e.enf.AddPolicy(strings.ToUpper(role), obj, act)
	return err
}

// GrantRules applies "ROLE:object:action" rules such as
// "MANAGER:financial-values:edit".
func (e *Enforcer) GrantRules(rules []string) error {
	for _, rule := range rules {
		parts := strings.Split(rule, ":")
		if len(parts) != 3 {
			return fmt.Errorf("authz: rule %q is not ROLE:object:action", rule)
		}
		role, obj, act := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
		if role == "" || obj == "" {
			return fmt.Errorf("authz: rule %q is not ROLE:object:action", rule)
		}
		if act != ActionEdit && act != ActionDelete {
			return fmt.Errorf("authz: rule %q has unknown action %q", rule, act)
		}
		if err := e.Grant(role, obj, act); err != nil {
			return fmt.Errorf("authz: grant %q: %w", rule, err)
		}
		e.log.Debug().Str("role", role).Str("object", obj).Str("action", act).Msg("granted")
	}
	return nil
}

func (e *Enforcer) Can(role, obj, act string) bool {
	if role == "" {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	ok, err := e.enf.Enforce(strings.ToUpper(role), obj, act)
	if err != nil {
		e.log.Error().Err(err).Str("role", role).Str("object", obj).Str("action", act).Msg("enforce failed")
		return false
	}
	return ok
}

// Authorize is Can as an error, for handlers that re-check a hidden action.
func (e *Enforcer) Authorize(role, obj, act string) error {
	if e.Can(role, obj, act) {
		return nil
	}
	e.log.Warn().Str("role", role).Str("object", obj).Str("action", act).Msg("denied")
	return fmt.Errorf("%w: %s cannot %s %s", ErrForbidden, role, act, obj)
}

// Affordances is what a table row may show.
type Affordances struct {
	View   bool
	Edit   bool
	Delete bool
}

func (e *Enforcer) For(role, obj string) Affordances {
	return Affordances{
		View:   true,
		Edit:   e.Can(role, obj, ActionEdit),
		Delete: e.Can(role, obj, ActionDelete),
	}
}
