package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	// Self service
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error
	GetPreferences(ctx context.Context, userID uuid.UUID) (*response.PreferenceResponse, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req *request.UpdatePreferencesRequest) (*response.PreferenceResponse, error)

	// Admin
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUser(ctx context.Context, id string) (*response.UserResponse, error)
	UpdateRole(ctx context.Context, adminID uuid.UUID, id string, req *request.UpdateRoleRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, adminID uuid.UUID, id string) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func defaultPreference(userID uuid.UUID) *entity.UserPreference {
	return &entity.UserPreference{
		UserID:             userID,
		FavoriteGenres:     []string{},
		Language:           "en",
		EmailNotifications: true,
		Theme:              "system",
		UpdatedAt:          time.Now(),
	}
}

func (us *userService) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("failed to get user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username != user.Username {
			other, err := us.repo.User.FindByUsername(ctx, username)
			if err != nil {
				return nil, fmt.Errorf("check username: %w", err)
			}
			if other != nil && other.ID != user.ID {
				return nil, fmt.Errorf("username already taken")
			}
			user.Username = username
		}
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			other, err := us.repo.User.FindByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			}
			if other != nil && other.ID != user.ID {
				return nil, fmt.Errorf("email already registered")
			}
			user.Email = email
		}
	}

	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := us.repo.User.Update(ctx, user); err != nil {
		if database.IsUniqueViolation(err, "") {
			return nil, fmt.Errorf("username or email already registered")
		}
		us.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("update profile: %w", err)
	}

	us.log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := us.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		us.log.Warn("Wrong current password", zap.String("user_id", userID.String()))
		return fmt.Errorf("invalid credentials: current password does not match")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to process password")
	}

	user.PasswordHash = hashed
	user.UpdatedAt = time.Now()
	if err := us.repo.User.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// Every open session must log in again with the new password
	if err := us.repo.Session.RevokeAllUserSessions(ctx, userID); err != nil {
		us.log.Warn("Failed to revoke sessions after password change",
			zap.Error(err), zap.String("user_id", userID.String()))
	}

	us.log.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

func (us *userService) GetPreferences(ctx context.Context, userID uuid.UUID) (*response.PreferenceResponse, error) {
	pref, err := us.repo.Preference.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	if pref == nil {
		pref = defaultPreference(userID)
	}

	resp := response.PreferenceToResponse(pref)
	return &resp, nil
}

func (us *userService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *request.UpdatePreferencesRequest) (*response.PreferenceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	pref, err := us.repo.Preference.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	if pref == nil {
		pref = defaultPreference(userID)
	}

	if req.FavoriteGenres != nil {
		genres := make([]string, 0, len(req.FavoriteGenres))
		for _, g := range req.FavoriteGenres {
			genres = append(genres, strings.TrimSpace(g))
		}
		pref.FavoriteGenres = genres
	}
	if req.Language != nil {
		pref.Language = *req.Language
	}
	if req.EmailNotifications != nil {
		pref.EmailNotifications = *req.EmailNotifications
	}
	if req.Theme != nil {
		pref.Theme = *req.Theme
	}
	pref.UpdatedAt = time.Now()

	if err := us.repo.Preference.Upsert(ctx, pref); err != nil {
		us.log.Error("Failed to save preferences", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	resp := response.PreferenceToResponse(pref)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := us.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users", zap.Error(err))
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := us.repo.User.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	return response.NewPaginatedResponse(response.UsersToResponse(users), req.Page, req.Limit(), total), nil
}

func (us *userService) GetUser(ctx context.Context, id string) (*response.UserResponse, error) {
	userID, err := parseID("user", id)
	if err != nil {
		return nil, err
	}
	return us.GetProfile(ctx, userID)
}

func (us *userService) UpdateRole(ctx context.Context, adminID uuid.UUID, id string, req *request.UpdateRoleRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userID, err := parseID("user", id)
	if err != nil {
		return nil, err
	}
	if userID == adminID {
		return nil, fmt.Errorf("cannot change your own role")
	}

	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	role := entity.UserRole(req.Role)
	if err := us.repo.User.UpdateRole(ctx, userID, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	user.Role = role

	us.log.Info("User role updated",
		zap.String("user_id", userID.String()),
		zap.String("role", req.Role),
		zap.String("admin_id", adminID.String()),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) DeleteUser(ctx context.Context, adminID uuid.UUID, id string) error {
	userID, err := parseID("user", id)
	if err != nil {
		return err
	}
	if userID == adminID {
		return fmt.Errorf("cannot delete your own account")
	}

	if _, err := us.findUser(ctx, userID); err != nil {
		return err
	}

	// Remember which movies lose a review so their ratings can be recomputed
	reviews, err := us.repo.Review.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user reviews: %w", err)
	}

	if err := us.repo.User.DeleteWithContent(ctx, userID); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("delete user: %w", err)
	}

	for _, rv := range reviews {
		if err := refreshMovieRating(ctx, us.repo, rv.MovieID); err != nil {
			us.log.Warn("Failed to update movie rating",
				zap.Error(err), zap.String("movie_id", rv.MovieID.String()))
		}
	}

	us.log.Info("User deleted with content",
		zap.String("user_id", userID.String()),
		zap.String("admin_id", adminID.String()),
		zap.Int("reviews_removed", len(reviews)),
	)
	return nil
}
