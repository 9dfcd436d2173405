package sale

import (
	"go-commission/internal/access"
)

// Row level rules on top of the resource RBAC enforced by the routes.
// Capabilities of several roles add up.

func canView(actor access.Actor, s *Sale) bool {
	return actor.Roles.IsStaff() || s.SellerID == actor.UserID
}

func ownsOpenSale(actor access.Actor, s *Sale) bool {
	return actor.Roles.Has(access.RoleSeller) &&
		s.SellerID == actor.UserID &&
		s.ContractStatus == ContractNotGenerated
}

func canEditData(actor access.Actor, s *Sale) bool {
	return actor.Roles.CanManage() || ownsOpenSale(actor, s)
}

func canSetSaleStatus(actor access.Actor, s *Sale) bool {
	return actor.Roles.CanManage() || ownsOpenSale(actor, s)
}

func canSetPaymentStatus(actor access.Actor) bool {
	return actor.Roles.HasAny(access.RoleAdmin, access.RoleManager, access.RoleFinance)
}

func canSetContractStatus(actor access.Actor) bool {
	return actor.Roles.HasAny(access.RoleAdmin, access.RoleManager, access.RoleLawyer)
}

func canUpload(actor access.Actor, s *Sale, kind AttachmentKind) bool {
	if actor.Roles.CanManage() {
		return true
	}
	switch kind {
	case AttachmentReceipt:
		if actor.Roles.Has(access.RoleFinance) {
			return true
		}
		return actor.Roles.Has(access.RoleSeller) && s.SellerID == actor.UserID
	case AttachmentInvoice:
		return actor.Roles.Has(access.RoleFinance)
	case AttachmentContract:
		return actor.Roles.Has(access.RoleLawyer)
	}
	return false
}

func canDeleteAttachment(actor access.Actor, s *Sale, a *Attachment) bool {
	if actor.Roles.CanManage() {
		return true
	}
	approved := s.PaymentStatus == PaymentApproved
	switch a.Kind {
	case AttachmentInvoice:
		return actor.Roles.Has(access.RoleFinance)
	case AttachmentReceipt:
		if approved {
			return false
		}
		if actor.Roles.Has(access.RoleFinance) {
			return true
		}
		return actor.Roles.Has(access.RoleSeller) && s.SellerID == actor.UserID
	case AttachmentContract:
		return actor.Roles.Has(access.RoleLawyer)
	}
	return false
}

// Permissions tells the client which actions the caller may take on a sale.
func permissionsFor(actor access.Actor, s *Sale) Permissions {
	return Permissions{
		EditData:          canEditData(actor, s),
		EditCommission:    actor.Roles.CanManage(),
		SetSaleStatus:     canSetSaleStatus(actor, s),
		SetPaymentStatus:  canSetPaymentStatus(actor),
		SetContractStatus: canSetContractStatus(actor),
	}
}
