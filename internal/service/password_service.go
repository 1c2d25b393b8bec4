package service

type PasswordService interface {
	// Hash returns a self-describing encoded hash.
	Hash(password string) (string, error)
	Verify(password, encoded string) (rehashNeeded bool, ok bool)
}
