package service

import (
	"context"
	"crypto/tls"
	"slices"
	"strings"
	"time"

	"customer-intake-portal/internal/config"
	"customer-intake-portal/internal/logger"
	"customer-intake-portal/internal/repository"

	"github.com/go-ldap/ldap/v3"
	"github.com/google/uuid"
)

// ldapClient is the subset of *ldap.Conn used by the directory
type ldapClient interface {
	Bind(username, password string) error
	Search(searchRequest *ldap.SearchRequest) (*ldap.SearchResult, error)
	Close() error
	SetTimeout(timeout time.Duration)
}

var dialLDAP = func(network, addr string, cfg *tls.Config) (ldapClient, error) {
	conn, err := ldap.DialTLS(network, addr, cfg)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// RepositoryEmployeeDirectory serves employee lookups straight from the employee store
type RepositoryEmployeeDirectory struct {
	repo repository.EmployeeRepositoryInterface
}

// NewRepositoryEmployeeDirectory creates a database-backed employee directory
func NewRepositoryEmployeeDirectory(repo repository.EmployeeRepositoryInterface) *RepositoryEmployeeDirectory {
	return &RepositoryEmployeeDirectory{repo: repo}
}

// LookupFields returns the requested employee columns as stored
func (d *RepositoryEmployeeDirectory) LookupFields(_ context.Context, id uuid.UUID, fields []string) (map[string]interface{}, error) {
	return d.repo.LookupFields(id, fields)
}

// LDAPUser represents a subset of LDAP user attributes returned by the search
type LDAPUser struct {
	DN          string `json:"dn"`
	DisplayName string `json:"displayName"`
	Mail        string `json:"mail"`
}

// LDAPEmployeeDirectory resolves employees from the database and takes their
// display name and mail address from the corporate LDAP directory when available.
type LDAPEmployeeDirectory struct {
	cfg  *config.Config
	repo repository.EmployeeRepositoryInterface
}

// NewLDAPEmployeeDirectory creates a new LDAP-backed employee directory
func NewLDAPEmployeeDirectory(cfg *config.Config, repo repository.EmployeeRepositoryInterface) *LDAPEmployeeDirectory {
	return &LDAPEmployeeDirectory{cfg: cfg, repo: repo}
}

// LookupFields returns the requested employee columns. "name" and "email" are
// overridden by the LDAP entry of the employee's user_id. If LDAP cannot be reached
// the database values are returned unchanged.
func (d *LDAPEmployeeDirectory) LookupFields(ctx context.Context, id uuid.UUID, fields []string) (map[string]interface{}, error) {
	query := fields
	userIDRequested := slices.Contains(fields, "user_id")
	if !userIDRequested {
		query = append(append([]string{}, fields...), "user_id")
	}

	out, err := d.repo.LookupFields(id, query)
	if err != nil {
		return nil, err
	}

	userID := strings.TrimSpace(repository.FieldString(out, "user_id"))
	if !userIDRequested {
		delete(out, "user_id")
	}
	if userID == "" {
		return out, nil
	}

	user, err := d.FindUser(userID)
	if err != nil {
		logger.WithContext(ctx).WithField("user_id", userID).WithError(err).Warn("LDAP lookup failed, using stored employee data")
		return out, nil
	}
	if user == nil {
		return out, nil
	}

	if _, ok := out["name"]; ok && user.DisplayName != "" {
		out["name"] = user.DisplayName
	}
	if _, ok := out["email"]; ok && user.Mail != "" {
		out["email"] = user.Mail
	}
	return out, nil
}

// FindUser looks up one account by exact common name. It returns nil when no entry matches.
func (d *LDAPEmployeeDirectory) FindUser(cn string) (*LDAPUser, error) {
	addr := d.cfg.LDAPHost + ":" + d.cfg.LDAPPort

	// Establish TLS connection to LDAP server
	l, err := dialLDAP("tcp", addr, &tls.Config{InsecureSkipVerify: d.cfg.LDAPInsecureSkipVerify})
	if err != nil {
		return nil, err
	}
	defer l.Close()

	if d.cfg.LDAPTimeoutSec > 0 {
		l.SetTimeout(time.Duration(d.cfg.LDAPTimeoutSec) * time.Second)
	}

	if err := l.Bind(d.cfg.LDAPBindDN, d.cfg.LDAPBindPW); err != nil {
		return nil, err
	}

	req := ldap.NewSearchRequest(
		baseDNFor(d.cfg.LDAPBaseDN, cn),
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		1,
		d.cfg.LDAPTimeoutSec,
		false,
		"(cn="+ldap.EscapeFilter(cn)+")",
		[]string{"displayName", "mail"},
		nil,
	)

	res, err := l.Search(req)
	if err != nil {
		return nil, err
	}
	if len(res.Entries) == 0 {
		return nil, nil
	}

	e := res.Entries[0]
	return &LDAPUser{
		DN:          e.DN,
		DisplayName: e.GetAttributeValue("displayName"),
		Mail:        e.GetAttributeValue("mail"),
	}, nil
}

// baseDNFor narrows the search to the OU of the account type (I, D or C user ids)
func baseDNFor(baseDN, cn string) string {
	if len(cn) == 0 {
		return baseDN
	}
	switch strings.ToLower(string(cn[0])) {
	case "i":
		return "OU=I," + baseDN
	case "d":
		return "OU=D," + baseDN
	case "c":
		return "OU=C," + baseDN
	}
	return baseDN
}
