package domain

type CtxKey string

const (
	KeyUserID     CtxKey = "UserID"
	KeyUserEmail  CtxKey = "Email"
	KeyUserRole   CtxKey = "Role"
	KeyUserGender CtxKey = "Gender"
	KeyUserName   CtxKey = "FullName"
)

// Roles supplied by the identity provider
const (
	RoleCandidate = "candidate"
	RoleModerator = "moderator"
)
