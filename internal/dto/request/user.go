package request

type UpdateProfileRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName  *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type UpdatePreferencesRequest struct {
	FavoriteGenres     []string `json:"favorite_genres,omitempty" validate:"omitempty,max=20,dive,min=1,max=40"`
	Language           *string  `json:"language,omitempty" validate:"omitempty,min=2,max=10"`
	EmailNotifications *bool    `json:"email_notifications,omitempty"`
	Theme              *string  `json:"theme,omitempty" validate:"omitempty,oneof=light dark system"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=User Staff Admin"`
}
