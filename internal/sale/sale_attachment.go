package sale

import (
	"context"
	"strings"

	"go-commission/internal/access"
	saleerrors "go-commission/internal/sale/errors"
	"go-commission/internal/shared/database"
	"go-commission/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *service) UploadAttachment(ctx context.Context, actor access.Actor, id string, kind string, file storage.Upload) (AttachmentResponse, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return AttachmentResponse{}, saleerrors.ErrInvalidSaleID
	}
	k := AttachmentKind(strings.ToLower(strings.TrimSpace(kind)))
	if !k.Valid() {
		return AttachmentResponse{}, saleerrors.ErrInvalidAttachmentKind
	}
	if file.Content == nil {
		return AttachmentResponse{}, saleerrors.ErrAttachmentRequired
	}

	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return AttachmentResponse{}, mapRepositoryError(err)
	}
	if !canView(actor, sale) {
		return AttachmentResponse{}, saleerrors.ErrSaleNotFound
	}
	if !canUpload(actor, sale, k) {
		return AttachmentResponse{}, saleerrors.ErrUploadNotAllowed
	}

	a, err := s.store(ctx, saleID, k, actor.UserID, file)
	if err != nil {
		return AttachmentResponse{}, err
	}
	committed := false
	defer func() {
		if !committed {
			s.removeFile(ctx, a.FileKey)
		}
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttachmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.CreateAttachment(ctx, &a); err != nil {
		return AttachmentResponse{}, err
	}

	// A receipt on a pending sale asks finance to validate the payment.
	if k == AttachmentReceipt {
		locked, err := qtx.FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return AttachmentResponse{}, mapRepositoryError(err)
		}
		if locked.PaymentStatus == PaymentPending {
			locked.PaymentStatus = PaymentAwaitingValidation
			if err := qtx.Update(ctx, locked); err != nil {
				return AttachmentResponse{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return AttachmentResponse{}, err
	}
	committed = true

	s.log(ctx).Info("sale attachment uploaded",
		zap.String("sale_id", saleID.String()),
		zap.String("kind", string(k)),
		zap.String("key", a.FileKey),
	)
	return mapAttachment(a, s.url(ctx, a.FileKey)), nil
}

func (s *service) DeleteAttachment(ctx context.Context, actor access.Actor, id string, attachmentID string) error {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return saleerrors.ErrInvalidSaleID
	}
	attID, err := uuid.Parse(attachmentID)
	if err != nil {
		return saleerrors.ErrAttachmentNotFound
	}

	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !canView(actor, sale) {
		return saleerrors.ErrSaleNotFound
	}

	a, err := s.repo.FindAttachment(ctx, saleID, attID)
	if err != nil {
		if database.IsNotFound(err) {
			return saleerrors.ErrAttachmentNotFound
		}
		return err
	}
	if !canDeleteAttachment(actor, sale, a) {
		return saleerrors.ErrDeleteAttachmentNotAllowed
	}

	if err := s.repo.DeleteAttachment(ctx, a.ID); err != nil {
		if database.IsNotFound(err) {
			return saleerrors.ErrAttachmentNotFound
		}
		return err
	}
	s.removeFile(ctx, a.FileKey)

	s.log(ctx).Info("sale attachment deleted",
		zap.String("sale_id", saleID.String()),
		zap.String("attachment_id", a.ID.String()),
	)
	return nil
}

// store saves file under sales/sale_<id>/<kind>/ and returns the
// attachment row to insert.
func (s *service) store(ctx context.Context, saleID uuid.UUID, kind AttachmentKind, uploader uuid.UUID, file storage.Upload) (Attachment, error) {
	key := storage.NewKey(file.Filename, "sales", "sale_"+saleID.String(), string(kind))
	if err := s.files.Save(ctx, key, file.Content, file.Size, file.ContentType); err != nil {
		s.log(ctx).Error("store sale attachment failed", zap.String("key", key), zap.Error(err))
		return Attachment{}, err
	}
	return Attachment{
		ID:          uuid.New(),
		SaleID:      saleID,
		Kind:        kind,
		FileKey:     key,
		FileName:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.Size,
		UploadedBy:  uploader,
	}, nil
}

func (s *service) removeFile(ctx context.Context, key string) {
	if err := s.files.Delete(ctx, key); err != nil {
		s.log(ctx).Warn("remove stored file failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *service) url(ctx context.Context, key string) string {
	u, err := s.files.URL(ctx, key)
	if err != nil {
		s.log(ctx).Warn("resolve file url failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return u
}
