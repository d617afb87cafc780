package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation   ErrCode = "VALIDATION_ERROR"
	ErrInvalidSkill ErrCode = "INVALID_SKILL"

	// ─── Engine taxonomy ───────────────────────────────────────────────
	ErrDataUnavailable     ErrCode = "DATA_UNAVAILABLE"
	ErrEmptyBucket         ErrCode = "EMPTY_BUCKET"
	ErrPersistence         ErrCode = "PERSISTENCE_ERROR"
	ErrBandingTableInvalid ErrCode = "BANDING_TABLE_INVALID"

	// ─── Session lifecycle ─────────────────────────────────────────────
	ErrNoSession          ErrCode = "NO_SESSION"
	ErrSessionNotReady    ErrCode = "SESSION_NOT_READY"
	ErrSessionActive      ErrCode = "SESSION_ACTIVE"
	ErrSessionFinished    ErrCode = "SESSION_FINISHED"
	ErrResultsPending     ErrCode = "RESULTS_PENDING"
	ErrUnansweredRemain   ErrCode = "UNANSWERED_REMAIN"
	ErrInvalidPosition    ErrCode = "INVALID_POSITION"
	ErrInvalidAlternative ErrCode = "INVALID_ALTERNATIVE"

	// ─── Practice ──────────────────────────────────────────────────────
	ErrNoFilter    ErrCode = "NO_FILTER"
	ErrEmptyFilter ErrCode = "EMPTY_FILTER"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the user-facing message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenRequired:
		return "Jeton d'authentification requis."
	case ErrTokenInvalid:
		return "Jeton d'authentification invalide."
	case ErrValidation:
		return "Validation échouée. Veuillez vérifier votre saisie."
	case ErrInvalidSkill:
		return "Épreuve inconnue. Choisissez « listening » ou « reading »."
	case ErrDataUnavailable:
		return "La banque de questions est momentanément indisponible."
	case ErrEmptyBucket:
		return "Aucune question disponible pour ce barème."
	case ErrPersistence:
		return "Vos réponses n'ont pas pu être enregistrées. Votre progression à l'écran est conservée."
	case ErrBandingTableInvalid:
		return "Barème de notation invalide."
	case ErrNoSession:
		return "Aucun test en cours."
	case ErrSessionNotReady:
		return "Le test est en cours de préparation. Un instant..."
	case ErrSessionActive:
		return "Un test est déjà en cours."
	case ErrSessionFinished:
		return "Ce test est terminé. Les réponses ne sont plus modifiables."
	case ErrResultsPending:
		return "Commencer un nouveau test effacera vos résultats précédents."
	case ErrUnansweredRemain:
		return "Des questions restent sans réponse."
	case ErrInvalidPosition:
		return "Numéro de question hors limites."
	case ErrInvalidAlternative:
		return "Choix de réponse invalide."
	case ErrNoFilter:
		return "Aucun filtre d'entraînement actif."
	case ErrEmptyFilter:
		return "Aucune question ne correspond à ce filtre."
	case ErrInternal:
		return "Une erreur interne est survenue."
	default:
		return "Une erreur inattendue est survenue."
	}
}
