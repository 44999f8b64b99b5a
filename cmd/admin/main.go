package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/config"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/jwt"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/util"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var command = flag.String("c", "token", "specifies the command (token, guest)")
var ttl = flag.Duration("ttl", jwt.DefaultTTL, "how long the token is valid")

func main() {
	flag.Parse()

	cfg := config.Instance().JWT
	secret := cfg.Secret
	if secret == "" {
		secret = getSecret()
		if secret == "" {
			os.Exit(1)
		}
	}

	jwt.SetSecret(secret, cfg.Audience)

	switch *command {
	case "token":
		playerID, err := getInput("Player ID (blank for a random id)")
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		if playerID == "" {
			playerID = util.RandomPlayerID()
		}

		printToken(playerID)
	case "guest":
		fmt.Printf("Name: %s\n", util.GetRandomName())
		printToken(util.RandomPlayerID())
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func printToken(playerID string) {
	token, err := jwt.Sign(playerID, *ttl)
	if err != nil {
		logrus.WithError(err).Fatal("could not sign token")
	}

	fmt.Printf("Player ID: %s\n", playerID)
	fmt.Printf("Token: %s\n", token)
}

func getSecret() string {
	for {
		fmt.Print("JWT secret: ")
		secretBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			logrus.WithError(err).Warn("could not read secret")
			return ""
		}
		fmt.Println("")

		secret := strings.TrimRight(string(secretBytes), "\r\n")
		if secret == "" {
			return ""
		}

		if len(secret) < 16 {
			_, _ = fmt.Fprintf(os.Stderr, "secret must be 16 or more characters\n")
			continue
		}

		return secret
	}
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
