package shell

import (
	"context"
	"errors"
	"strings"

	"go-pos-terminal/internal/middleware"
	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/service"
)

func (s *Shell) settingsMenu(ctx context.Context) error {
	return s.menu(ctx, "SYSTEM SETTINGS", []menuItem{
		{"Change Password", s.changePassword},
		{"Manage Users", middleware.RequirePrivilege(model.PrivUserManage, s.manageUsers)},
		{"Backup Database", s.backupDatabase},
		{"Restore Database", s.restoreDatabase},
		{label: "Back to Main Menu"},
	}, "", nil)
}

func (s *Shell) changePassword(ctx context.Context) error {
	session, ok := middleware.SessionFrom(ctx)
	if !ok {
		return middleware.ErrUnauthenticated
	}
	s.clear()
	s.header("CHANGE PASSWORD")

	current, err := s.password("Current Password: ")
	if err != nil {
		return err
	}
	next, err := s.password("New Password: ")
	if err != nil {
		return err
	}
	confirm, err := s.password("Confirm New Password: ")
	if err != nil {
		return err
	}

	err = s.svc.Auth.ChangePassword(ctx, session.Username, current, next, confirm)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		s.println("Current password is incorrect.")
	case errors.Is(err, service.ErrPasswordMismatch):
		s.println("Passwords do not match.")
	case errors.Is(err, service.ErrValidation):
		s.println("Password cannot be empty.")
	case err != nil:
		return err
	default:
		s.println("\nPassword changed successfully!")
	}
	return s.pause()
}

func (s *Shell) manageUsers(ctx context.Context) error {
	return s.menu(ctx, "MANAGE USERS", []menuItem{
		{"Add User", s.addUser},
		{"View Users", s.viewUsers},
		{"Update User", s.updateUser},
		{"Delete User", s.deleteUser},
		{label: "Back to System Settings"},
	}, "", nil)
}

func (s *Shell) addUser(ctx context.Context) error {
	s.clear()
	s.header("ADD USER")

	username, err := s.prompt("Username: ")
	if err != nil {
		return err
	}
	password, err := s.password("Password: ")
	if err != nil {
		return err
	}
	fullName, err := s.prompt("Full Name: ")
	if err != nil {
		return err
	}
	role, err := s.prompt("Role (admin/cashier): ")
	if err != nil {
		return err
	}

	_, err = s.svc.Users.CreateUser(ctx, &service.CreateUserRequest{
		Username: strings.TrimSpace(username),
		Password: password,
		FullName: strings.TrimSpace(fullName),
		Role:     role,
	})
	switch {
	case errors.Is(err, service.ErrDuplicateKey):
		s.println("Error: Username already exists.")
	case err != nil:
		return err
	default:
		s.printf("\nUser '%s' added successfully!\n", strings.TrimSpace(username))
	}
	return s.pause()
}

func (s *Shell) listUsers(ctx context.Context) error {
	users, err := s.svc.Users.GetAllUsers(ctx)
	if err != nil {
		return err
	}
	WriteUsers(s.out, users)
	return nil
}

func (s *Shell) viewUsers(ctx context.Context) error {
	s.clear()
	s.header("USER LIST")
	if err := s.listUsers(ctx); err != nil {
		return err
	}
	return s.pause()
}

func (s *Shell) pickUser(ctx context.Context, label string) (*model.User, error) {
	id, err := s.promptInt(label)
	if errors.Is(err, errInvalidNumber) {
		s.println("Error: Invalid user ID.")
		return nil, nil
	}
	if err != nil || id == 0 {
		return nil, err
	}
	user, err := s.svc.Users.GetUserByID(ctx, uint(id))
	if errors.Is(err, service.ErrNotFound) {
		s.println("User not found.")
		return nil, nil
	}
	return user, err
}

func (s *Shell) updateUser(ctx context.Context) error {
	s.clear()
	s.header("UPDATE USER")
	if err := s.listUsers(ctx); err != nil {
		return err
	}

	user, err := s.pickUser(ctx, "\nEnter user ID to update (0 to cancel): ")
	if err != nil {
		return err
	}
	if user == nil {
		return s.pause()
	}

	s.printf("\nCurrent details for %s:\n", user.Username)
	s.printf("Full Name: %s\n", user.FullName)
	s.printf("Role: %s\n", user.Role)

	username, err := s.prompt("\nNew username (current: " + user.Username + ", leave empty to keep): ")
	if err != nil {
		return err
	}
	fullName, err := s.prompt("New full name (current: " + user.FullName + ", leave empty to keep): ")
	if err != nil {
		return err
	}
	role, err := s.prompt("New role (current: " + user.Role + ", leave empty to keep): ")
	if err != nil {
		return err
	}

	var req service.UpdateUserRequest
	if v := strings.TrimSpace(username); v != "" {
		req.Username = &v
	}
	if v := strings.TrimSpace(fullName); v != "" {
		req.FullName = &v
	}
	if v := strings.TrimSpace(role); v != "" {
		req.Role = &v
	}

	changed, err := s.svc.Users.UpdateUser(ctx, user.ID, &req)
	switch {
	case errors.Is(err, service.ErrDuplicateKey):
		s.println("Error: Username already exists.")
	case err != nil:
		return err
	case changed:
		s.println("\nUser updated successfully!")
	default:
		s.println("\nNo changes made.")
	}
	return s.pause()
}

func (s *Shell) deleteUser(ctx context.Context) error {
	session, ok := middleware.SessionFrom(ctx)
	if !ok {
		return middleware.ErrUnauthenticated
	}
	s.clear()
	s.header("DELETE USER")
	if err := s.listUsers(ctx); err != nil {
		return err
	}

	user, err := s.pickUser(ctx, "\nEnter user ID to delete (0 to cancel): ")
	if err != nil {
		return err
	}
	if user == nil {
		return s.pause()
	}
	if user.ID == session.UserID {
		s.println("You cannot delete the account you are logged in with.")
		return s.pause()
	}

	sales, err := s.svc.Users.SaleCount(ctx, user.ID)
	if err != nil {
		return err
	}
	if sales > 0 {
		s.printf("Cannot delete user '%s' because they have %d associated sales.\n", user.Username, sales)
		return s.pause()
	}

	confirmed, err := s.confirm("Are you sure you want to delete '" + user.Username + "'? (y/n): ")
	if err != nil {
		return err
	}
	if !confirmed {
		s.println("Deletion canceled.")
		return s.pause()
	}
	if err := s.svc.Users.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	s.println("User deleted successfully!")
	return s.pause()
}

func (s *Shell) backupDatabase(ctx context.Context) error {
	s.clear()
	s.header("BACKUP DATABASE")

	filename, err := s.prompt("\nEnter backup filename (e.g., pos_backup.db): ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(filename) == "" {
		s.println("Backup canceled.")
		return s.pause()
	}

	res, err := s.svc.Backup.Backup(ctx, filename)
	if err != nil {
		s.printf("Error during backup: %v\n", err)
		return s.pause()
	}
	s.printf("\nDatabase backed up successfully to %s\n", res.Path)
	s.printf("Checksum (BLAKE2b-256): %s\n", res.Checksum)
	return s.pause()
}

// restoreDatabase overwrites the live database and ends the session with
// ErrRestartRequired, since the connection is closed afterwards
func (s *Shell) restoreDatabase(ctx context.Context) error {
	s.clear()
	s.header("RESTORE DATABASE")

	filename, err := s.prompt("\nEnter backup filename to restore from: ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(filename) == "" {
		s.println("Restore canceled.")
		return s.pause()
	}
	if _, err := s.svc.Backup.Locate(filename); err != nil {
		s.println("Backup file not found.")
		return s.pause()
	}

	ok, err := s.confirm("\nWARNING: This will overwrite the current database!\nAre you sure? (y/n): ")
	if err != nil {
		return err
	}
	if !ok {
		s.println("Restore canceled.")
		return s.pause()
	}

	if _, err := s.svc.Backup.Restore(ctx, filename); err != nil {
		s.printf("Error during restore: %v\n", err)
		return s.pause()
	}
	s.println("\nDatabase restored successfully!")
	s.println("Please restart the application.")
	return ErrRestartRequired
}
