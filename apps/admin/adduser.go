package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tmahmud/shikkha/core"
	"github.com/tmahmud/shikkha/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(name, studentID, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	name = core.CleanString(name)
	studentID = core.CleanString(studentID)
	email = core.CleanString(email, true /* lower */)

	if studentID == user.SuperuserStudentID {
		return user.ErrStudentIDReserved
	}

	usr, err := cli.usrRepo.GetUserByStudentID(ctx, studentID)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		usr = user.User{
			ID:        uuid.New().String(),
			StudentID: studentID,
			JoinDate:  user.NowFunc().UTC(),
		}
		usr.Name = name
		usr.Email = email
		usr.Password = pwd
		usr.Role = user.RoleStudent
		if isAdmin {
			usr.Role = user.RoleAdmin
		}
		_, err = cli.usrRepo.CreateUser(ctx, usr)
		return err
	}

	usr.Name = name
	usr.Email = email
	usr.Password = pwd
	if isAdmin {
		usr.Role = user.RoleAdmin
	}
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}
