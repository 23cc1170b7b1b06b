package service

import (
	apperrors "github.com/chrono2k/gradmateAPI/pkg/errors"
)

// 业务错误码按模块分段：10xxx 通用 / 11xxx 账号 / 12xxx 课程 / 13xxx 教师 /
// 14xxx 学生 / 15xxx 项目 / 16xxx 报告 / 17xxx 附件 / 18xxx 答辩纪要 / 19xxx 日历

// ── 通用 ──

var (
	ErrNoChanges     = apperrors.Validation(10010, "Nenhuma alteração foi realizada")
	ErrInvalidStatus = apperrors.Validation(10011, "Status inválido")
	ErrTextTooShort  = apperrors.Validation(10012, "Campo deve ter no mínimo 3 caracteres")
	ErrInvalidDate   = apperrors.Validation(10013, "Data inválida, use o formato YYYY-MM-DD")
)

// tooShort 带字段名的最小长度错误，与 ErrTextTooShort 同码
func tooShort(field string) error {
	return apperrors.Validation(ErrTextTooShort.Code, field+" deve ter no mínimo 3 caracteres")
}

// ── 账号 ──

var (
	ErrInvalidCredentials = apperrors.Unauthorized(11001, "Credenciais inválidas")
	ErrUserNotFound       = apperrors.NotFound(11002, "Usuário não encontrado")
	ErrUsernameExists     = apperrors.Conflict(11003, "Nome de usuário já está em uso")
	ErrInvalidAuthority   = apperrors.Validation(11004, "Permissão inválida")
	ErrSelfModification   = apperrors.Validation(11005, "Não é possível alterar a própria permissão ou status")
	ErrPasswordTooLong    = apperrors.Validation(11006, "Senha deve ter no máximo 72 bytes")
)

// ── 课程 ──

var (
	ErrCourseNotFound    = apperrors.NotFound(12001, "Curso não encontrado")
	ErrCourseNameExists  = apperrors.Conflict(12002, "Já existe um curso ativo com este nome")
	ErrInvalidSignature  = apperrors.Validation(12003, "Assinatura inválida")
	ErrSignatureNotFound = apperrors.NotFound(12004, "Assinatura não encontrada")
	ErrSignatureSave     = apperrors.Validation(12005, "Falha ao salvar a assinatura")
)

// ── 教师 ──

var (
	ErrTeacherNotFound    = apperrors.NotFound(13001, "Professor não encontrado")
	ErrTeacherEmailExists = apperrors.Conflict(13002, "Já existe um usuário cadastrado com este email")
)

// ── 学生 ──

var (
	ErrStudentNotFound    = apperrors.NotFound(14001, "Aluno não encontrado")
	ErrStudentEmailExists = apperrors.Conflict(14002, "Já existe um usuário cadastrado com este email")
	ErrRegistrationExists = apperrors.Conflict(14003, "Já existe um aluno com esta matrícula")
)

// ── 项目 ──

var (
	ErrProjectNotFound      = apperrors.NotFound(15001, "Projeto não encontrado")
	ErrInvalidProjectStatus = apperrors.Validation(15002, "Status do projeto inválido")
	ErrTeacherRoleConflict  = apperrors.Conflict(15003, "Professor já vinculado ao projeto com outro papel")
	ErrProjectForbidden     = apperrors.Forbidden(15004, "Sem permissão para acessar este projeto")
	ErrEmptyIDList          = apperrors.Validation(15005, "Informe ao menos um id")
)

// ── 报告 ──

var (
	ErrReportNotFound      = apperrors.NotFound(16001, "Relatório não encontrado")
	ErrInvalidReportStatus = apperrors.Validation(16002, "Status do relatório inválido")
)

// ── 附件 ──

var (
	ErrFileNotFound    = apperrors.NotFound(17001, "Arquivo não encontrado")
	ErrNoFiles         = apperrors.Validation(17002, "Nenhum arquivo enviado")
	ErrFileTooLarge    = apperrors.Validation(17003, "Arquivo excede o tamanho máximo permitido")
	ErrEmptyFileIDList = apperrors.Unprocessable(17004, "Lista de arquivos vazia")
	ErrInvalidFileID   = apperrors.Validation(17005, "Identificador de arquivo inválido")
)

// ── 答辩纪要 ──

var (
	ErrDefenseMinutesNotFound = apperrors.NotFound(18001, "Ata não encontrada")
	ErrTitleRequired          = apperrors.Validation(18002, "Título é obrigatório")
	ErrInvalidDefenseResult   = apperrors.Validation(18003, "Resultado inválido, use aprovado, reprovado ou pendente")
	ErrFileNotInProject       = apperrors.Validation(18004, "Arquivo não pertence a este projeto")
	ErrInvalidStartedAt       = apperrors.Validation(18005, "Data de início inválida")
)

// ── 日历 ──

var (
	ErrInvalidDateStatus = apperrors.Validation(19001, "Status deve estar entre 1 e 6")
	ErrDateNotFound      = apperrors.NotFound(19002, "Data não encontrada")
	ErrClearNotConfirmed = apperrors.Validation(19003, "Confirme a operação com confirm=true")
	ErrInvalidYear       = apperrors.Validation(19004, "Ano inválido")
)
