// Package services реализует бизнес-логику справочника контактов:
// клиентов и поставщиков учетной записи.
package services

import (
	"context"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// ContactRepository описывает методы хранилища для работы с контактами.
type ContactRepository interface {
	CreateContact(ctx context.Context, contact models.Contact) (int, error)
	ReadContact(ctx context.Context, accountUID string, id int) (*models.Contact, error)
	ListContacts(ctx context.Context, accountUID string, limit, offset int) ([]*models.Contact, error)
	UpdateContact(ctx context.Context, contact models.Contact) (int, error)
	RemoveContact(ctx context.Context, accountUID string, id int) (int, error)
}

// ContactService реализует операции над контактами.
type ContactService struct {
	repo ContactRepository
}

// NewContactService создает новый сервис контактов.
func NewContactService(repo ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// Create сохраняет новый контакт и возвращает его ID.
func (s *ContactService) Create(ctx context.Context, accountUID string, req models.DummyContact) (int, error) {
	return s.repo.CreateContact(ctx, contactFromRequest(accountUID, 0, req))
}

// Read возвращает контакт по идентификатору.
func (s *ContactService) Read(ctx context.Context, accountUID string, id int) (*models.Contact, error) {
	return s.repo.ReadContact(ctx, accountUID, id)
}

// List возвращает контакты учетной записи с пагинацией.
func (s *ContactService) List(ctx context.Context, accountUID string, limit, offset int) ([]*models.Contact, error) {
	return s.repo.ListContacts(ctx, accountUID, limit, offset)
}

// Update обновляет контакт и возвращает количество измененных записей.
func (s *ContactService) Update(ctx context.Context, accountUID string, id int, req models.DummyContact) (int, error) {
	return s.repo.UpdateContact(ctx, contactFromRequest(accountUID, id, req))
}

// Remove удаляет контакт и возвращает количество удаленных записей.
func (s *ContactService) Remove(ctx context.Context, accountUID string, id int) (int, error) {
	return s.repo.RemoveContact(ctx, accountUID, id)
}

func contactFromRequest(accountUID string, id int, req models.DummyContact) models.Contact {
	contact := models.Contact{
		ID:         id,
		AccountUID: accountUID,
		Name:       req.Name,
		Kind:       req.Kind,
		TaxID:      req.TaxID,
		PersonType: req.PersonType,
	}
	if req.Email != "" {
		contact.Email = &req.Email
	}
	if req.Phone != "" {
		contact.Phone = &req.Phone
	}
	return contact
}
