package shared

// Role của một tài khoản thư viện
type Role string

const (
	RoleMember    Role = "member"    // Adherent: chỉ mượn sách cho chính mình
	RoleLibrarian Role = "librarian" // Thủ thư: quản lý catalog, mượn/trả cho mọi member
)

func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleLibrarian
}

func (r Role) String() string {
	return string(r)
}

// Task types (asynq)
const (
	TypeSendSuspensionNotice = "loan:suspension_notice"
	TypeScanOverdueLoans     = "loan:scan_overdue"
)

// Queues
const (
	QueueLoan    = "loan"
	QueueDefault = "default"
)
