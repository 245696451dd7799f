package settings

// StoreOption is a functional option for configuring a Store.
type StoreOption func(*storeImpl)

// WithSettings seeds the store with s instead of Default(). The value is normalized.
//
// Parameters:
//   - s: the initial settings
//
// Returns:
//   - StoreOption: functional option to set the initial settings
func WithSettings(s Settings) StoreOption {
	return func(st *storeImpl) {
		st.settings = s
	}
}
