package student

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/tshims/shule/core"
)

// Role is the fixed role reported in a student's authentication profile.
const Role = "student"

type Student struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Course       string             `json:"course" bson:"course"`
	Username     string             `json:"username" bson:"username"`
	Semester     string             `json:"semester" bson:"semester"`
	PasswordHash []byte             `json:"-" bson:"password"`
}

func (s *Student) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s *Student) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

type Profile struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
	Role string             `json:"role"`
}

// NewStudent contains information needed to register a new Student.
// Username uniqueness is not checked; see the service for details.
type NewStudent struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Course   string `json:"course" validate:"required"`
	Username string `json:"username" validate:"required,min=4,alphanum_"`
	Semester string `json:"semester"`
	Password string `json:"password" validate:"required"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Course = core.CleanString(ns.Course)
	ns.Username = core.CleanString(ns.Username, true /* lower */)
	if ns.Semester == "" {
		ns.Semester = "I"
	}
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing
// Student. Empty fields are left untouched.
type UpdateStudent struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Course   string `json:"course"`
	Username string `json:"username" validate:"omitempty,min=4,alphanum_"`
	Semester string `json:"semester"`
	Password string `json:"password"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Course = core.CleanString(us.Course)
	us.Username = core.CleanString(us.Username, true /* lower */)
	return validate.Struct(us)
}
