package constants

import "fmt"

// Role yang dikenal di platform
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
	RoleUstaz   = "ustaz"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyUstazCanAccess  = "❌ Hanya ustaz atau admin yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorUstaz(feature string) string {
	return fmt.Sprintf(ErrOnlyUstazCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleAdmin,
		RoleUstaz,
	}

	StaffRoles = []string{
		RoleAdmin,
		RoleUstaz,
	}
)

// IsKnownRole memeriksa apakah string role termasuk role yang dikenal.
func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeRole mengembalikan role yang aman untuk dipakai dashboard.
// Data lama pernah korup (kolom phone/role tertukar), jadi nilai di luar
// daftar role dianggap student.
func NormalizeRole(role string) string {
	if IsKnownRole(role) {
		return role
	}
	return RoleStudent
}
