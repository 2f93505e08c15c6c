package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"youapp-client/internal/domain"
	"youapp-client/internal/service"
)

type cli struct {
	reader   *bufio.Reader
	out      io.Writer
	auth     *service.AuthService
	profiles *service.ProfileService
}

func (c *cli) run(ctx context.Context) {
	for {
		session, loggedIn := c.auth.Session()
		fmt.Fprintln(c.out, "\n===== YouApp =====")
		if loggedIn {
			fmt.Fprintf(c.out, "Sesión: @%s (%s)\n", session.User.Username, session.TokenPreview())
			fmt.Fprintln(c.out, "[1] Ver perfil")
			fmt.Fprintln(c.out, "[2] Editar datos (About)")
			fmt.Fprintln(c.out, "[3] Editar intereses")
			fmt.Fprintln(c.out, "[4] Editar nombre")
			fmt.Fprintln(c.out, "[5] Cerrar sesión")
		} else {
			fmt.Fprintln(c.out, "[1] Iniciar sesión")
			fmt.Fprintln(c.out, "[2] Registrarse")
		}
		fmt.Fprintln(c.out, "[Q] Salir")

		choice, ok := c.prompt("Selección: ")
		if !ok || strings.EqualFold(choice, "q") {
			return
		}

		if loggedIn {
			switch choice {
			case "1":
				c.showProfile(ctx)
			case "2":
				c.editAbout(ctx)
			case "3":
				c.editInterests(ctx)
			case "4":
				c.editName(ctx)
			case "5":
				c.auth.Logout(ctx)
				c.success("Sesión cerrada.")
			default:
				c.fail("Selección inválida.")
			}
			continue
		}

		switch choice {
		case "1":
			c.login(ctx)
		case "2":
			c.register(ctx)
		default:
			c.fail("Selección inválida.")
		}
	}
}

func (c *cli) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (c *cli) readCredentials() domain.Credentials {
	email, _ := c.prompt("Email: ")
	username, _ := c.prompt("Username: ")
	password, _ := c.prompt("Password: ")
	return domain.Credentials{Email: email, Username: username, Password: password}
}

func (c *cli) login(ctx context.Context) {
	session, err := c.auth.Login(ctx, c.readCredentials())
	if err != nil {
		c.fail(failureMessage(err, c.auth.State().Error))
		return
	}
	c.success(fmt.Sprintf("Bienvenido, @%s.", session.User.Username))
}

func (c *cli) register(ctx context.Context) {
	res, err := c.auth.Register(ctx, c.readCredentials())
	if err != nil {
		c.fail(failureMessage(err, c.auth.State().Error))
		return
	}
	if res.AutoLogin {
		c.success("Cuenta creada e iniciada.")
		return
	}
	msg := res.Message
	if msg == "" {
		msg = "Cuenta creada."
	}
	c.success(msg + " Ya podés iniciar sesión.")
}

func (c *cli) showProfile(ctx context.Context) {
	if !c.profiles.HasProfile() {
		if _, err := c.profiles.GetProfile(ctx); err != nil {
			c.fail(failureMessage(err, c.profiles.Error()))
		}
	}
	renderProfile(c.out, c.profiles.View(time.Now()))
}

func (c *cli) editAbout(ctx context.Context) {
	current, _ := c.profiles.Profile()
	fmt.Fprintln(c.out, "Enter deja el valor actual.")

	next := current
	next.Name = c.promptDefault("Nombre", current.Name)
	next.Birthday = c.promptDefault("Cumpleaños (DD MM YYYY)", service.FormatBirthdayDisplay(current.Birthday))
	if next.Birthday != "" {
		next.Birthday = service.FormatBirthdayInput(next.Birthday)
	}
	next.Height = c.promptInt("Altura (cm)", current.Height)
	next.Weight = c.promptInt("Peso (kg)", current.Weight)

	msg, err := c.profiles.SaveAbout(ctx, next)
	if err != nil {
		c.fail(failureMessage(err, c.profiles.Error()))
		return
	}
	c.success(msg)
}

func (c *cli) editInterests(ctx context.Context) {
	current, _ := c.profiles.Profile()
	interests := append([]string{}, current.Interests...)
	for {
		fmt.Fprintf(c.out, "Intereses: %s\n", strings.Join(interests, ", "))
		line, ok := c.prompt("+interés, -interés, o Enter para guardar: ")
		if !ok || line == "" {
			break
		}
		switch line[0] {
		case '+':
			interests = domain.AddInterest(interests, line[1:])
		case '-':
			interests = domain.RemoveInterest(interests, strings.TrimSpace(line[1:]))
		default:
			interests = domain.AddInterest(interests, line)
		}
	}

	msg, err := c.profiles.SaveInterests(ctx, interests)
	if err != nil {
		c.fail(failureMessage(err, c.profiles.Error()))
		return
	}
	c.success(msg)
}

func (c *cli) editName(ctx context.Context) {
	name, ok := c.prompt("Nuevo nombre: ")
	if !ok {
		return
	}
	msg, err := c.profiles.SetName(ctx, name)
	if err != nil {
		c.fail(failureMessage(err, ""))
		return
	}
	c.success(msg)
}

func (c *cli) promptDefault(label, current string) string {
	value, ok := c.prompt(fmt.Sprintf("%s [%s]: ", label, current))
	if !ok || value == "" {
		return current
	}
	return value
}

func (c *cli) promptInt(label string, current int) int {
	for {
		value := c.promptDefault(label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n >= 0 {
			return n
		}
		c.fail("Ingresá un número entero positivo.")
	}
}

// failureMessage prefiere el error guardado en el estado y si no hay usa err.
// Los errores de validación local se marcan para no confundirlos con los del servidor.
func failureMessage(err error, state string) string {
	msg := state
	if msg == "" && err != nil {
		msg = err.Error()
	}
	if service.IsValidationError(err) {
		return "Datos inválidos: " + msg
	}
	return msg
}

func (c *cli) fail(msg string) {
	if msg == "" {
		msg = "Error desconocido."
	}
	color.New(color.FgHiRed, color.Bold).Fprintln(c.out, msg)
}

func (c *cli) success(msg string) {
	color.New(color.FgHiGreen).Fprintln(c.out, msg)
}
