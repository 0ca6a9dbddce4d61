package main

import (
	"context"
)

func (cli *commandLine) resetPassword(studentID, pwd string) error {
	ctx := context.Background()
	usr, err := cli.usrRepo.GetUserByStudentID(ctx, studentID)
	if err != nil {
		return err
	}
	usr.Password = pwd
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}
