package models

// Identity is the trusted caller identity produced by token verification.
// It is the only identity shape consumed by the vault operations.
type Identity struct {
	UserID   int64
	TenantID int64
	Email    string
}

// EntryRef addresses a credential entry on behalf of its owner.
// Every lookup through an EntryRef is ownership-scoped: an entry owned by
// another user or tenant is indistinguishable from a missing one.
type EntryRef struct {
	EntryID  int64
	UserID   int64
	TenantID int64
}

// Ref builds the ownership-scoped reference to entryID for i.
func (i Identity) Ref(entryID int64) EntryRef {
	return EntryRef{
		EntryID:  entryID,
		UserID:   i.UserID,
		TenantID: i.TenantID,
	}
}

// ExternalIdentity is the profile returned by an OAuth identity provider.
type ExternalIdentity struct {
	Email     string
	FirstName string
	LastName  string
}

// DisplayName returns "<first> <last>" as stored for provisioned accounts.
func (e ExternalIdentity) DisplayName() string {
	return e.FirstName + " " + e.LastName
}
