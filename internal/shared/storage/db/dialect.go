package db

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Dialect names one of the supported SQL back ends.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

// ParseDialect maps a configured driver name onto a Dialect.
func ParseDialect(raw string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "postgresql", "pgx", "":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", raw)
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	default:
		return "pgx"
	}
}

// GooseDialect is the goose dialect used for migrations.
func (d Dialect) GooseDialect() string {
	switch d {
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite3"
	default:
		return "postgres"
	}
}

// SupportsReturning reports whether INSERT ... RETURNING yields the new id.
func (d Dialect) SupportsReturning() bool {
	return d == Postgres
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatDate returns an expression rendering a DATE column as YYYY-MM-DD text.
func (d Dialect) FormatDate(column string) string {
	switch d {
	case MySQL:
		return "DATE_FORMAT(" + column + ", '%Y-%m-%d')"
	case SQLite:
		return "strftime('%Y-%m-%d', " + column + ")"
	default:
		return "to_char(" + column + ", 'YYYY-MM-DD')"
	}
}

// DSNParts are the discrete connection settings used when no DSN is given.
type DSNParts struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// BuildDSN assembles a driver-specific DSN from parts.
func BuildDSN(d Dialect, p DSNParts) (string, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", fmt.Errorf("database name is required")
	}
	switch d {
	case SQLite:
		if p.Name == ":memory:" {
			return "file::memory:?_pragma=foreign_keys(1)", nil
		}
		return "file:" + p.Name + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
	case MySQL:
		cfg := mysql.NewConfig()
		cfg.User = p.User
		cfg.Passwd = p.Password
		cfg.Net = "tcp"
		cfg.Addr = hostPort(p.Host, p.Port, "3306")
		cfg.DBName = p.Name
		cfg.ParseTime = true
		return cfg.FormatDSN(), nil
	default:
		u := url.URL{
			Scheme: "postgres",
			Host:   hostPort(p.Host, p.Port, "5432"),
			Path:   "/" + p.Name,
		}
		if p.User != "" {
			if p.Password != "" {
				u.User = url.UserPassword(p.User, p.Password)
			} else {
				u.User = url.User(p.User)
			}
		}
		return u.String(), nil
	}
}

func hostPort(host, port, defPort string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		host = "localhost"
	}
	port = strings.TrimSpace(port)
	if port == "" {
		port = defPort
	}
	return net.JoinHostPort(host, port)
}
