package configs

type EmailConfig struct {
	SmtpHost    string `yaml:"smtp_host"`
	SmtpPort    int    `yaml:"smtp_port"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	SenderEmail string `yaml:"sender_email"`
}
