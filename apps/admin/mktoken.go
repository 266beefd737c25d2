package main

import (
	"fmt"

	echoapi "github.com/edukeep/edukeep/apps/api/echo"
)

// makeToken prints a signed API token. There is no user store; access to
// this command implies access to the server's secret key.
func (cli *commandLine) makeToken(email string, isAdmin bool) error {
	token, err := echoapi.GenerateToken(echoapi.GetClaims(email, email, isAdmin))
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
