package keymap

import "slices"

// Resolver maps key strings to actions. A key resolves to the same action in
// every context, so one resolver serves the whole app.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string // in binding order, without repeats
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.actions[key] = b.Action
			if !slices.Contains(r.keys[b.Action], key) {
				r.keys[b.Action] = append(r.keys[b.Action], key)
			}
		}
	}
	return r
}

// Default returns a resolver over all Bindings.
func Default() *Resolver {
	return NewResolver(Bindings)
}

// Resolve returns the action for a key, or "" if the key is unbound.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}

// Hint returns the first key bound to action, for footers and prompts.
func (r *Resolver) Hint(action Action) string {
	if keys := r.keys[action]; len(keys) > 0 {
		return keys[0]
	}
	return ""
}
