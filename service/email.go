package service

import (
	"fmt"
	"io"

	"chequeprinter/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg  *config.EmailConfig
	send func(m *gomail.Message) error
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{cfg: cfg}
	s.send = s.dialAndSend
	return s
}

// SendBackup 发送备份文件
func (s *EmailService) SendBackup(toEmail, filename string, data []byte, cheques, layouts int) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 CHEQUE_EMAIL_ENABLED=true")
	}

	m := s.newMessage(toEmail, "[Cheque Printer] 数据备份 "+filename, s.generateBackupEmailBody(filename, cheques, layouts))
	m.Attach(filename,
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/json"}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
	)
	return s.sendEmail(m)
}

// generateBackupEmailBody 生成备份邮件内容
func (s *EmailService) generateBackupEmailBody(filename string, cheques, layouts int) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; border-radius: 4px; }
        .warning p { margin: 0; color: #856404; font-size: 14px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Cheque Printer</h1>
        </div>
        <div class="content">
            <p>附件 <strong>%s</strong> 为本机支票数据的完整备份。</p>
            <p>共 <strong>%d</strong> 条支票记录，<strong>%d</strong> 个版式。</p>
            <div class="warning">
                <p>⚠️ 备份文件为明文 JSON，包含收款人与金额，请妥善保管。</p>
            </div>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
        </div>
    </div>
</body>
</html>
`, filename, cheques, layouts)
}

func (s *EmailService) newMessage(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(m *gomail.Message) error {
	if err := s.send(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

func (s *EmailService) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
