package models

import "time"

// Product — товар кредитного магазина; цена в кредитах.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	OnSale      bool      `json:"onSale"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductInput — создание/изменение товара. Указатели позволяют PATCH-ить
// только переданные поля.
type ProductInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	OnSale      *bool   `json:"onSale,omitempty"`
}

// ProductImage — файл изображения товара для multipart-загрузки.
type ProductImage struct {
	Filename    string
	ContentType string
	Data        []byte
}
