package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"markethub/internal/account"
	"markethub/internal/cart"
	"markethub/internal/catalog"
	"markethub/internal/chat"
	"markethub/internal/money"
	"markethub/internal/seller"
	"markethub/internal/session"
)

// app is the interactive driver. It only translates lines into service
// calls and errors into messages; every rule lives in the internal
// packages.
type app struct {
	in  *bufio.Scanner
	out io.Writer

	accounts account.Service
	sessions *session.Manager
	catalog  *catalog.Service
	cart     *cart.Service
	seller   *seller.Service
	chat     *chat.Service
}

// promptConfirmer asks the logout question on the terminal.
type promptConfirmer struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPromptConfirmer(in *bufio.Scanner, out io.Writer) session.Confirmer {
	return &promptConfirmer{in: in, out: out}
}

func (c *promptConfirmer) ConfirmLogout() bool {
	fmt.Fprint(c.out, "Выйти из аккаунта? [y/N]: ")
	if !c.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

func (a *app) run(ctx context.Context) {
	fmt.Fprintln(a.out, "MarketHub. Введите help для списка команд.")
	a.printStatus()

	for {
		fmt.Fprint(a.out, "> ")
		if !a.in.Scan() {
			return
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "quit", "exit":
			return
		case "help":
			a.printHelp()
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.printStatus()
		case "profile":
			a.profile(ctx)
		case "products":
			a.printProducts(a.catalog.List())
		case "search":
			a.search(rest)
		case "cart":
			a.cartCmd(ctx, rest)
		case "sell":
			a.sellCmd(ctx, rest)
		case "chat":
			a.chatCmd(ctx, rest)
		default:
			fmt.Fprintf(a.out, "неизвестная команда %q\n", cmd)
		}
	}
}

func (a *app) printHelp() {
	fmt.Fprint(a.out, `команды:
  register            создать аккаунт (с автоматическим входом)
  login               войти
  logout              выйти (с подтверждением)
  whoami              текущая сессия
  profile             профиль и настройки
  products            все товары
  search <кат> [текст] фильтр каталога (кат: all|electronics|fashion|home|beauty|sports)
  cart                корзина
  cart add <id>       добавить товар в корзину
  cart rm <id>        убрать товар из корзины
  sell                мои товары
  sell add            добавить товар
  sell rm <id>        удалить товар
  chat                сообщения магазина
  chat send <текст>   написать в чат
  quit                выход
`)
}

func (a *app) prompt(label string) string {
	fmt.Fprintf(a.out, "%s: ", label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) printStatus() {
	if s, ok := a.sessions.Current(); ok {
		fmt.Fprintf(a.out, "вы вошли как %s <%s>\n", s.Name, s.Email)
	} else {
		fmt.Fprintln(a.out, "вы не вошли в аккаунт")
	}
}

func (a *app) register(ctx context.Context) {
	params := account.RegisterParams{
		Name:          a.prompt("Имя и фамилия"),
		Email:         a.prompt("Email"),
		Phone:         a.prompt("Телефон"),
		Secret:        a.prompt("Пароль (минимум 6 символов)"),
		ConfirmSecret: a.prompt("Повторите пароль"),
	}

	acc, err := a.accounts.Register(ctx, params)
	if err != nil {
		fmt.Fprintln(a.out, "ошибка:", err)
		return
	}

	// Registration logs in immediately.
	if _, err := a.sessions.Login(ctx, acc); err != nil {
		fmt.Fprintln(a.out, "ошибка:", err)
		return
	}
	a.printStatus()
}

func (a *app) login(ctx context.Context) {
	email := a.prompt("Email")
	secret := a.prompt("Пароль")

	acc, err := a.accounts.Authenticate(ctx, email, secret)
	if err != nil {
		fmt.Fprintln(a.out, "ошибка:", err)
		return
	}
	if _, err := a.sessions.Login(ctx, acc); err != nil {
		fmt.Fprintln(a.out, "ошибка:", err)
		return
	}
	a.printStatus()
}

func (a *app) logout(ctx context.Context) {
	err := a.sessions.Logout(ctx)
	switch err {
	case nil:
		fmt.Fprintln(a.out, "вы вышли из аккаунта")
	case session.ErrNotConfirmed:
		fmt.Fprintln(a.out, "выход отменён")
	default:
		fmt.Fprintln(a.out, "ошибка:", err)
	}
}

func (a *app) profile(ctx context.Context) {
	s, ok := a.sessions.Current()
	if !ok {
		fmt.Fprintln(a.out, "войдите в аккаунт")
		return
	}

	// The session projection has no address; rehydrate from the directory.
	acc, found, err := a.accounts.FindByEmail(ctx, s.Email)
	if err != nil {
		fmt.Fprintln(a.out, "ошибка:", err)
		return
	}
	address := "Не указан"
	if found && acc.Address != "" {
		address = acc.Address
	}

	fmt.Fprintf(a.out, "%s\n%s\n%s\n%s\n", s.Name, s.Email, s.Phone, address)

	if a.prompt("Сменить пароль? [y/N]") == "y" {
		current := a.prompt("Текущий пароль")
		next := a.prompt("Новый пароль (минимум 6 символов)")
		if err := a.accounts.ChangeSecret(ctx, s.Email, current, next); err != nil {
			fmt.Fprintln(a.out, "ошибка:", err)
		} else {
			fmt.Fprintln(a.out, "пароль изменён")
		}
	}

	if a.prompt("Изменить настройки? [y/N]") != "y" {
		return
	}

	params := account.UpdateProfileParams{
		Email:    s.Email,
		Name:     orDefault(a.prompt("Имя ["+s.Name+"]"), s.Name),
		NewEmail: a.prompt("Email [" + s.Email + "]"),
		Phone:    orDefault(a.prompt("Телефон ["+s.Phone+"]"), s.Phone),
		Address:  orDefault(a.prompt("Адрес доставки ["+address+"]"), acc.Address),
	}

	updated, err := a.accounts.UpdateProfile(ctx, params)
	if err != nil {
		fmt.Fprintln(a.out, "ошибка:", err)
		return
	}
	if err := a.sessions.SetSession(ctx, updated); err != nil {
		fmt.Fprintln(a.out, "ошибка:", err)
		return
	}
	fmt.Fprintln(a.out, "сохранено")
}

func (a *app) search(rest string) {
	categoryArg, query, _ := strings.Cut(rest, " ")
	if categoryArg == "" {
		categoryArg = string(catalog.CategoryAll)
	}

	category := catalog.Category(categoryArg)
	if category != catalog.CategoryAll {
		parsed, err := catalog.ParseCategory(categoryArg)
		if err != nil {
			fmt.Fprintln(a.out, "ошибка:", err)
			return
		}
		category = parsed
	}

	a.printProducts(a.catalog.Search(category, strings.TrimSpace(query)))
}

func (a *app) printProducts(products []catalog.Product) {
	if len(products) == 0 {
		fmt.Fprintln(a.out, "Пока нет товаров")
		return
	}
	for _, p := range products {
		fmt.Fprintf(a.out, "%d  %s %s — %s ₽ (%s, ★%.1f, %d отзывов)\n",
			p.ID, p.Image, p.Name, money.Format(p.PriceKopecks), p.Seller, p.Rating, p.ReviewCount)
	}
}

func (a *app) cartCmd(ctx context.Context, rest string) {
	sub, arg, _ := strings.Cut(rest, " ")
	switch sub {
	case "":
		items := a.cart.Items()
		if len(items) == 0 {
			fmt.Fprintln(a.out, "Корзина пуста")
			return
		}
		for _, item := range items {
			fmt.Fprintf(a.out, "%s x%d — %s ₽\n",
				item.Product.Name, item.Quantity,
				money.Format(item.Product.PriceKopecks*int64(item.Quantity)))
		}
		fmt.Fprintf(a.out, "Итого: %s ₽\n", money.Format(a.cart.TotalKopecks()))
	case "add":
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			fmt.Fprintln(a.out, "ошибка: нужен id товара")
			return
		}
		for _, p := range a.catalog.List() {
			if p.ID == id {
				if err := a.cart.Add(ctx, p); err != nil {
					fmt.Fprintln(a.out, "ошибка:", err)
				}
				return
			}
		}
		fmt.Fprintln(a.out, "товар не найден")
	case "rm":
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			fmt.Fprintln(a.out, "ошибка: нужен id товара")
			return
		}
		a.cart.Remove(ctx, id)
	default:
		fmt.Fprintf(a.out, "неизвестная подкоманда %q\n", sub)
	}
}

func (a *app) sellCmd(ctx context.Context, rest string) {
	if _, ok := a.sessions.Current(); !ok {
		fmt.Fprintln(a.out, "войдите в аккаунт")
		return
	}

	sub, arg, _ := strings.Cut(rest, " ")
	switch sub {
	case "":
		listings := a.seller.List()
		if len(listings) == 0 {
			fmt.Fprintln(a.out, "У вас пока нет товаров")
			return
		}
		for _, l := range listings {
			fmt.Fprintf(a.out, "%d  %s %s — %s ₽ (%s)\n",
				l.ID, l.Image, l.Name, money.Format(l.PriceKopecks), l.Category)
		}
	case "add":
		form := seller.ListingForm{
			Name:        a.prompt("Название товара"),
			Price:       a.prompt("Цена (₽)"),
			Category:    a.prompt("Категория (electronics|fashion|home|beauty|sports)"),
			Description: a.prompt("Описание"),
			Image:       a.prompt("Иконка [📦]"),
		}
		listing, err := a.seller.Add(ctx, form)
		if err != nil {
			fmt.Fprintln(a.out, "ошибка:", err)
			return
		}
		fmt.Fprintf(a.out, "товар добавлен, id %d\n", listing.ID)
	case "rm":
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			fmt.Fprintln(a.out, "ошибка: нужен id товара")
			return
		}
		a.seller.Delete(ctx, id)
	default:
		fmt.Fprintf(a.out, "неизвестная подкоманда %q\n", sub)
	}
}

func (a *app) chatCmd(ctx context.Context, rest string) {
	if _, ok := a.sessions.Current(); !ok {
		fmt.Fprintln(a.out, "войдите в аккаунт")
		return
	}

	sub, text, _ := strings.Cut(rest, " ")
	switch sub {
	case "":
		msgs, err := a.chat.Messages(chat.ThreadShop)
		if err != nil {
			fmt.Fprintln(a.out, "ошибка:", err)
			return
		}
		for _, m := range msgs {
			fmt.Fprintf(a.out, "[%s] %s: %s\n", m.Time, m.Sender, m.Text)
		}
	case "send":
		if _, err := a.chat.Send(ctx, chat.ThreadShop, text); err != nil {
			fmt.Fprintln(a.out, "ошибка:", err)
		}
	default:
		fmt.Fprintf(a.out, "неизвестная подкоманда %q\n", sub)
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
