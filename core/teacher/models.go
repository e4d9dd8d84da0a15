package teacher

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/tshims/shule/core"
)

type Teacher struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash []byte             `json:"-" bson:"password"`
	Department   string             `json:"department" bson:"department"`
	Role         string             `json:"role" bson:"role"`
}

func (t *Teacher) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t.PasswordHash = hash
	return nil
}

func (t *Teacher) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(t.PasswordHash, []byte(pwd))
}

// IsApproved reports whether an admin has granted this teacher a role.
// Unapproved teachers cannot authenticate.
func (t *Teacher) IsApproved() bool { return t.Role != "" }

// Profile is the response to a successful authentication. It carries no token;
// session management is left entirely to the caller.
type Profile struct {
	ID         primitive.ObjectID `json:"_id"`
	Name       string             `json:"name"`
	Role       string             `json:"role"`
	Department string             `json:"department"`
}

// NewTeacher contains information needed to register a new Teacher.
// Registration never grants a role; approval is a separate update by an admin.
type NewTeacher struct {
	Name       string `json:"name" validate:"required"`
	Username   string `json:"username" validate:"required,min=4,alphanum_"`
	Password   string `json:"password" validate:"required"`
	Department string `json:"department" validate:"required"`
}

func (nt *NewTeacher) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Username = core.CleanString(nt.Username, true /* lower */)
	nt.Department = core.CleanString(nt.Department)

	if err := validate.Struct(nt); err != nil {
		return err
	}
	return svc.checkUniqueness(ctx, nt.Username)
}

// UpdateTeacher defines what information may be provided to modify an existing
// Teacher. Empty fields are left untouched; setting Role approves the account.
type UpdateTeacher struct {
	Name       string `json:"name"`
	Username   string `json:"username" validate:"omitempty,min=4,alphanum_"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Password   string `json:"password"`
}

func (ut *UpdateTeacher) Validate(ctx context.Context, validate *validator.Validate, svc *Service, orig Teacher) error {
	ut.Name = core.CleanString(ut.Name)
	ut.Department = core.CleanString(ut.Department)

	uname := core.CleanString(ut.Username, true /* lower */)
	if uname != "" {
		ut.Username = uname
	} else {
		ut.Username = orig.Username
	}

	if err := validate.Struct(ut); err != nil {
		return err
	}
	return svc.checkUniqueness(ctx, ut.Username, orig)
}

// Credentials is a login request for either principal type.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Username = core.CleanString(c.Username, true /* lower */)
	return validate.Struct(c)
}
