package domain

import "time"

// Author is a person who wrote one or more books.
type Author struct {
	ID        int64     `json:"_id"`
	Name      string    `json:"name"`
	DOB       Date      `json:"dob"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
	CreatedBy int64     `json:"createdBy"`
	UpdatedBy int64     `json:"updatedBy"`
}

// AuthorQuery filters an author search by name substring.
type AuthorQuery struct {
	Name string
}
