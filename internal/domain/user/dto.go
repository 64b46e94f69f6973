package user

type CreateUserInput struct {
	Username string  `form:"username" binding:"required,min=3,max=50" example:"johndoe"`
	Password string  `form:"password" binding:"required,min=6" example:"password123"`
	Email    *string `form:"email" binding:"omitempty,email" example:"js123@cam.ac.uk"`
	FullName *string `form:"full_name" example:"John Smith"`
}

type UpdateUserInput struct {
	OldPassword *string `form:"old_password" example:"oldPass123"`
	Password    *string `form:"password" binding:"omitempty,min=6" example:"newPass123"`
	Email       *string `form:"email" binding:"omitempty,email" example:"js123@cam.ac.uk"`
	FullName    *string `form:"full_name" example:"John Smith"`
}

type SetAdminInput struct {
	IsAdmin bool `json:"is_admin"`
}

type UserDTO struct {
	UID       uint    `json:"u_id" example:"123"`
	Username  string  `json:"username" example:"johndoe"`
	Email     *string `json:"email" example:"js123@cam.ac.uk"`
	FullName  *string `json:"full_name" example:"John Smith"`
	IsAdmin   bool    `json:"is_admin" example:"false"`
	CreatedAt string  `json:"create_at" example:"2026-02-17 15:20:41"`
	UpdatedAt string  `json:"update_at" example:"2026-02-17 15:20:41"`
}

const dtoTimeFormat = "2006-01-02 15:04:05"

// DTO is the API shape of a user record.
func (u User) DTO() UserDTO {
	return UserDTO{
		UID:       u.UID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.Format(dtoTimeFormat),
		UpdatedAt: u.UpdatedAt.Format(dtoTimeFormat),
	}
}

// DTOs maps a user list for API responses.
func DTOs(users []User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, u.DTO())
	}
	return out
}
