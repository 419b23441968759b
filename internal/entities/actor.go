package entities

type Role string

const (
	RoleCustomer   Role = "customer"
	RolePharmacist Role = "pharmacist"
)

// Actor is the caller identity derived at the transport boundary.
// There is no real authentication behind it; state-mutating operations
// still check it explicitly instead of trusting client-side role flags.
type Actor struct {
	UserID     string
	Role       Role
	PharmacyID string
}

// CanManagePharmacy reports whether the actor holds the pharmacist
// capability for the given pharmacy.
func (a Actor) CanManagePharmacy(pharmacyID string) bool {
	return a.Role == RolePharmacist && a.PharmacyID == pharmacyID && pharmacyID != ""
}
