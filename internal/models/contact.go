package models

import "time"

// Виды контактов.
const (
	ContactClient   = "cliente"
	ContactProvider = "proveedor"
)

// Типы юридических лиц (используются при расчете удержаний).
const (
	PersonFisica = "fisica"
	PersonMoral  = "moral"
)

// Contact представляет клиента или поставщика, привязанного к учетной записи.
type Contact struct {
	ID         int       // Идентификатор контакта
	AccountUID string    // Владелец записи
	Name       string    // Название или ФИО контакта
	Kind       string    // cliente или proveedor
	TaxID      string    // RFC контакта
	PersonType string    // fisica или moral
	Email      *string   // Электронная почта (опционально)
	Phone      *string   // Телефон (опционально)
	CreatedAt  time.Time // Дата создания записи
}

// DummyContact используется для приёма данных контакта из JSON-запроса
// до их валидации и преобразования в Contact.
type DummyContact struct {
	Name       string `json:"name" validate:"required"`
	Kind       string `json:"kind" validate:"required,oneof=cliente proveedor"`
	TaxID      string `json:"tax_id" validate:"required"`
	PersonType string `json:"person_type" validate:"required,oneof=fisica moral"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty" validate:"omitempty"`
}
