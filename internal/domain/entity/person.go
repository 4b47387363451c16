package entity

import (
	"fmt"
	"io"
)

// Person holds identity attributes shared by every kind of person
type Person struct {
	firstName     string
	lastName      string
	middleInitial rune
	title         string // Mr., Ms., Mrs., Miss, Dr., etc.
}

// NewPerson creates a person
func NewPerson(firstName, lastName string, middleInitial rune, title string) Person {
	return Person{
		firstName:     firstName,
		lastName:      lastName,
		middleInitial: middleInitial,
		title:         title,
	}
}

func (p *Person) FirstName() string   { return p.firstName }
func (p *Person) LastName() string    { return p.lastName }
func (p *Person) MiddleInitial() rune { return p.middleInitial }
func (p *Person) Title() string       { return p.title }

// modifyTitle is only available to types in this package
func (p *Person) modifyTitle(title string) {
	p.title = title
}

// Print writes the person's full name
func (p *Person) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s %s %c. %s\n", p.title, p.firstName, p.middleInitial, p.lastName)
	return err
}

// IsA names the concrete kind
func (p *Person) IsA() string {
	return "Person"
}

// Greeting returns msg unchanged
func (p *Person) Greeting(msg string) string {
	return msg
}
