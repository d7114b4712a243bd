package types

// TestAccountID derives a stable account identity from name for tests
func TestAccountID(name string) AccountID {
	return DeriveAccountID("test", []byte(name))
}
