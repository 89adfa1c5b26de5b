package constants

import "fmt"

const (
	RoleMethodist = "methodist"
	RoleTeacher   = "teacher"
	RoleStudent   = "student"
)

// Template pesan error role
const (
	ErrOnlyMethodistsCanAccess = "only methodists can access %s"
	ErrOnlyTeachersCanAccess   = "only teachers can access %s"
	ErrOnlyStudentsCanAccess   = "only students can access %s"
	ErrOnlyStaffCanAccess      = "only teachers or methodists can access %s"
)

func RoleErrorMethodist(feature string) string {
	return fmt.Sprintf(ErrOnlyMethodistsCanAccess, feature)
}

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleMethodist,
		RoleTeacher,
		RoleStudent,
	}

	// SelfSignupRoles: role yang boleh dipilih sendiri lewat /auth/register
	// (methodist pertama dikecualikan, lihat AuthService.Register).
	SelfSignupRoles = []string{
		RoleTeacher,
		RoleStudent,
	}

	StaffRoles = []string{
		RoleTeacher,
		RoleMethodist,
	}

	MethodistOnly = []string{
		RoleMethodist,
	}

	TeacherOnly = []string{
		RoleTeacher,
	}

	StudentOnly = []string{
		RoleStudent,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
