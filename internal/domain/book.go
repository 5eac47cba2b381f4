package domain

import "time"

// Book is a catalogue entry. Authors holds author ids in the order they were given;
// ids are not checked against existing authors.
type Book struct {
	ID        int64     `json:"_id"`
	Title     string    `json:"title"`
	ISBN      *string   `json:"isbn"`
	Authors   []int64   `json:"authors"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
	CreatedBy int64     `json:"createdBy"`
	UpdatedBy int64     `json:"updatedBy"`
}

// BookQuery filters a book search. Empty fields match everything.
type BookQuery struct {
	// Title matches books whose title contains this substring.
	Title string
	// Authors matches books listing at least one of these author ids.
	Authors []int64
}
