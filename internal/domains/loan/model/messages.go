package model

import "fmt"

// Thông báo hiển thị cho người dùng
const (
	MsgBorrowed          = "Livre emprunte avec succes."
	MsgNoCopiesAvailable = "Le livre n'est pas disponible."
	MsgMemberSuspended   = "Vous ne pouvez pas emprunter de livres car votre compte est suspendu."
	MsgReturnedOnTime    = "Livre retourne a temps."
	MsgLoanNotFound      = "L'emprunt n'existe pas."
	MsgAlreadyReturned   = "Ce livre a deja ete retourne."

	msgReturnedLate = "Livre retourne tard. Penalite de %d jours appliquee."
)

func ReturnedLateMessage(overdueDays int) string {
	return fmt.Sprintf(msgReturnedLate, overdueDays)
}
