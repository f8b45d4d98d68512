package store

import "github.com/jbweber/hangar/api/v1alpha1"

// SetSettings replaces the settings and saves them.
func (s *Store) SetSettings(settings v1alpha1.Settings) *Result {
	next := settings.DeepCopy()
	return s.settings.mutate(func(v1alpha1.Settings) (v1alpha1.Settings, bool) {
		return next, true
	})
}

// SaveSettings saves the current settings.
func (s *Store) SaveSettings() *Result {
	return s.settings.flush()
}
