// Package cli implements the interactive terminal front end of the kotoba
// client: a small REPL over one TCP connection to the record server.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dkurose/kotoba/internal/client/client"
	"github.com/dkurose/kotoba/internal/client/config"
	"github.com/dkurose/kotoba/internal/client/services"
)

type App struct {
	config        *config.Config
	authService   services.AuthService
	recordService services.RecordService
	userName      string
	reader        *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewTCPClient(c.ServerEndpointAddr, c.DialTimeout)
	if err != nil {
		return nil, err
	}

	as := services.NewAuthService(apiClient)
	rs := services.NewRecordService(apiClient)

	return &App{config: c, authService: as, recordService: rs, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	fmt.Println("Welcome to kotoba CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}
