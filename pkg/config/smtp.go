package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// SMTPConfig contains the outbound mail settings and the message templates for down and up
// notifications. Templates may use the %UUID% and %NAME% placeholders.
//
// Everything but the flags below comes from the "smtp" section of the config file:
//
//	smtp:
//	  hostname: smtp.example.com
//	  port: 587
//	  username: monitor
//	  password: secret
//	  fromName: Heartbeat
//	  fromEmail: heartbeat@example.com
//	  toName: Operations
//	  toEmail: ops@example.com
//	  down_subject: "%NAME% is down"
//	  down_body: "Server %NAME% (%UUID%) stopped sending heartbeats."
//	  up_subject: "%NAME% is up"
//	  up_body: "Server %NAME% (%UUID%) is back online."
type SMTPConfig struct {
	Disabled     bool          `json:"disabled"`
	Hostname     string        `json:"hostname"`
	Port         int           `json:"port"`
	Username     string        `json:"username"`
	Password     string        `json:"password"`
	PasswordFile string        `json:"password_file"`
	FromName     string        `json:"from_name"`
	FromEmail    string        `json:"from_email"`
	ToName       string        `json:"to_name"`
	ToEmail      string        `json:"to_email"`
	DownSubject  string        `json:"down_subject"`
	DownBody     string        `json:"down_body"`
	UpSubject    string        `json:"up_subject"`
	UpBody       string        `json:"up_body"`
	Timeout      time.Duration `json:"timeout"`
}

func NewSMTPConfig() *SMTPConfig {
	return &SMTPConfig{
		Timeout: 30 * time.Second,
	}
}

func (c *SMTPConfig) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.Disabled, "smtp-disabled", c.Disabled, "Log notifications instead of sending them by email")
	fs.StringVar(&c.PasswordFile, "smtp-password-file", c.PasswordFile, "File containing the SMTP password, overrides smtp.password")
	fs.DurationVar(&c.Timeout, "smtp-timeout", c.Timeout, "Timeout for connecting to and talking with the SMTP server")
}

// ReadConfig reads the "smtp" section of the config file.
func (c *SMTPConfig) ReadConfig(v *viper.Viper) error {
	c.Hostname = v.GetString("smtp.hostname")
	c.Port = v.GetInt("smtp.port")
	c.Username = v.GetString("smtp.username")
	c.Password = v.GetString("smtp.password")
	c.FromName = v.GetString("smtp.fromName")
	c.FromEmail = v.GetString("smtp.fromEmail")
	c.ToName = v.GetString("smtp.toName")
	c.ToEmail = v.GetString("smtp.toEmail")
	c.DownSubject = v.GetString("smtp.down_subject")
	c.DownBody = v.GetString("smtp.down_body")
	c.UpSubject = v.GetString("smtp.up_subject")
	c.UpBody = v.GetString("smtp.up_body")
	return nil
}

func (c *SMTPConfig) ReadFiles() error {
	if c.PasswordFile == "" {
		return nil
	}
	return readFileValueString(c.PasswordFile, &c.Password)
}

// Validate checks that every setting needed to send mail is present. Nothing is required when SMTP is disabled.
func (c *SMTPConfig) Validate() error {
	if c.Disabled {
		return nil
	}
	required := []struct {
		key   string
		value string
	}{
		{"smtp.hostname", c.Hostname},
		{"smtp.username", c.Username},
		{"smtp.password", c.Password},
		{"smtp.fromEmail", c.FromEmail},
		{"smtp.toEmail", c.ToEmail},
		{"smtp.down_subject", c.DownSubject},
		{"smtp.down_body", c.DownBody},
		{"smtp.up_subject", c.UpSubject},
		{"smtp.up_body", c.UpBody},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("missing required setting %s", r.key)
		}
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid smtp.port %d", c.Port)
	}
	return nil
}
