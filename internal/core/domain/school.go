package domain

// School entities as served by the backend REST API. The portal treats them
// as opaque records to relay between the backend and the rendered views; it
// never persists or derives from them.

// Student is one enrolled student record.
type Student struct {
	ID          int64    `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	ClassName   string   `json:"className"`
	DateOfBirth string   `json:"dateOfBirth"`
	Address     string   `json:"address"`
	ParentIDs   []int64  `json:"parentIds,omitempty"`
	Subjects    []string `json:"subjects,omitempty"`
}

// Parent is a guardian account linked to zero or more students.
type Parent struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Address    string  `json:"address"`
	StudentIDs []int64 `json:"studentIds,omitempty"`
}

// Teacher is a staff record with assigned subjects.
type Teacher struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subjects  []Subject `json:"subjects,omitempty"`
}

// Subject is a taught subject that can be assigned to teachers.
type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
