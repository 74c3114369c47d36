package respond

import "github.com/campus-assistant-engine/internal/convo"

// Template tables, keyed by role. Each applicable set holds one to four
// variants; the generator picks uniformly at random among them.

var firstGreetings = map[convo.Role][]string{
	convo.RoleAdmin: {
		"Bonjour ! Je suis votre assistant de gestion. Je peux vous aider avec les utilisateurs, les cours et les statistiques de la plateforme.",
		"Bienvenue ! En tant qu'administrateur, vous pouvez me demander un aperçu de la plateforme ou de l'aide sur la gestion des comptes.",
		"Bonjour ! Prêt à administrer la plateforme ? Demandez-moi les statistiques globales ou la gestion des utilisateurs.",
	},
	convo.RoleTeacher: {
		"Bonjour ! Je suis là pour vous aider à gérer vos cours, créer des quiz et suivre vos étudiants.",
		"Bienvenue ! Besoin d'aide pour préparer un cours ou évaluer vos étudiants ? Je suis à votre disposition.",
		"Bonjour ! Que souhaitez-vous faire aujourd'hui : créer un cours, un quiz, ou consulter les résultats de vos étudiants ?",
	},
	convo.RoleStudent: {
		"Salut ! Je suis ton assistant d'apprentissage. Je peux t'aider à trouver des cours, réviser ou passer des quiz.",
		"Bonjour ! Prêt à apprendre ? Demande-moi de t'aider avec tes cours ou tes quiz.",
		"Salut ! Besoin d'un coup de main pour tes études ? Je suis là pour ça.",
	},
}

var returnGreetings = map[convo.Role][]string{
	convo.RoleAdmin: {
		"Re-bonjour ! On continue la gestion de la plateforme ?",
		"Content de vous revoir ! Que puis-je faire pour vous ?",
	},
	convo.RoleTeacher: {
		"Re-bonjour ! On reprend où nous en étions ?",
		"Content de vous revoir ! Un nouveau cours en préparation ?",
	},
	convo.RoleStudent: {
		"Re-salut ! On continue à travailler ?",
		"Te revoilà ! Prêt à reprendre tes révisions ?",
	},
}

var howCreateReplies = map[convo.Role][]string{
	convo.RoleAdmin: {
		"Pour créer un élément, ouvrez le tableau de bord d'administration puis choisissez « Créer ». Vous pouvez créer des comptes, des cours et des catégories.",
		"Depuis votre espace administrateur, le bouton « + » en haut à droite permet de créer un cours, un utilisateur ou une catégorie.",
	},
	convo.RoleTeacher: {
		"Pour créer un cours : allez dans « Mes cours », appuyez sur « Nouveau cours », donnez-lui un titre et ajoutez vos chapitres. Vous pourrez ensuite y associer des quiz.",
		"La création se fait depuis votre espace enseignant : « Nouveau cours » ou « Nouveau quiz », puis suivez les étapes. Besoin de détails sur une étape précise ?",
	},
	convo.RoleStudent: {
		"La création de cours et de quiz est réservée aux enseignants. En revanche, tu peux t'inscrire à un cours depuis le catalogue !",
		"Seuls les enseignants peuvent créer du contenu, mais tu peux rejoindre n'importe quel cours ouvert depuis la page « Catalogue ».",
	},
}

var whyReplies = []string{
	"Bonne question ! Pouvez-vous préciser le contexte pour que je vous donne une explication utile ?",
	"Les raisons dépendent du cas : dites-m'en un peu plus et je vous explique.",
	"Hmm, « pourquoi » est vaste. Donnez-moi un exemple concret et je détaille.",
}

var whenReplies = []string{
	"Les dates et échéances sont indiquées sur la page de chaque cours ou quiz. Voulez-vous que je vous oriente vers l'un d'eux ?",
	"Cela dépend du calendrier du cours concerné. De quel cours parlez-vous ?",
}

var whereReplies = []string{
	"Vous trouverez cela dans le menu principal de l'application. Dites-moi ce que vous cherchez exactement et je vous guide.",
	"Tout se trouve depuis l'écran d'accueil : cours, quiz et statistiques ont chacun leur onglet.",
}

var genericQuestionReplies = map[convo.Role][]string{
	convo.RoleAdmin: {
		"Bonne question. Je peux vous renseigner sur la gestion des utilisateurs, des cours ou les statistiques. Précisez votre besoin ?",
		"Je vous écoute. S'agit-il de la gestion de la plateforme ou d'un point précis ?",
	},
	convo.RoleTeacher: {
		"Bonne question ! Est-ce à propos de vos cours, de vos quiz ou de vos étudiants ?",
		"Je peux répondre sur la création de contenu et le suivi des étudiants. Pouvez-vous préciser ?",
	},
	convo.RoleStudent: {
		"Bonne question ! C'est à propos d'un cours, d'un quiz ou de tes résultats ?",
		"Je veux bien t'aider, précise un peu : cours, quiz ou autre chose ?",
	},
}

var helpReplies = map[convo.Role][]string{
	convo.RoleAdmin: {
		"Voici ce que je sais faire pour vous : gestion des utilisateurs, supervision des cours, statistiques globales et paramètres de la plateforme. Par quoi commence-t-on ?",
		"Je peux vous assister sur : les comptes, les cours, les rapports d'activité. Dites-moi ce qui vous intéresse.",
	},
	convo.RoleTeacher: {
		"Je peux vous aider à : créer et organiser vos cours, concevoir des quiz, suivre la progression de vos étudiants. Que souhaitez-vous faire ?",
		"Besoin d'aide ? Mes spécialités : création de cours, quiz et statistiques de classe. Laquelle vous intéresse ?",
	},
	convo.RoleStudent: {
		"Je peux t'aider à : trouver des cours, réviser, passer des quiz et consulter tes résultats. Qu'est-ce qui te ferait plaisir ?",
		"Pas de souci ! Dis-moi si c'est pour un cours, un quiz ou tes notes, et je te guide.",
	},
}

var courseReplies = map[convo.Role][]string{
	convo.RoleAdmin: {
		"Côté cours, vous pouvez superviser l'ensemble du catalogue, valider les nouveaux cours et consulter leur fréquentation.",
		"Le catalogue complet est visible depuis votre espace d'administration, avec les statistiques d'inscription par cours.",
	},
	convo.RoleTeacher: {
		"Pour vos cours : vous pouvez en créer un nouveau, modifier les chapitres existants ou consulter la liste de vos inscrits.",
		"Vos cours sont dans l'onglet « Mes cours ». Voulez-vous en créer un nouveau ou travailler sur un cours existant ?",
	},
	convo.RoleStudent: {
		"Pour les cours : le catalogue est dans l'onglet « Cours ». Tu peux t'inscrire à ceux qui t'intéressent et suivre ta progression.",
		"Tes cours en cours sont sur ta page d'accueil. Envie d'en découvrir de nouveaux ? Direction le catalogue !",
	},
}

var quizReplies = map[convo.Role][]string{
	convo.RoleAdmin: {
		"Les quiz de la plateforme sont listés avec leurs taux de réussite dans la section « Évaluations » de votre tableau de bord.",
	},
	convo.RoleTeacher: {
		"Pour vos quiz : créez-en un depuis un cours, ajoutez vos questions, puis publiez-le. Les résultats arrivent en temps réel.",
		"Un quiz se rattache toujours à un cours. Choisissez le cours concerné puis « Nouveau quiz ». Besoin d'aide sur les types de questions ?",
	},
	convo.RoleStudent: {
		"Pour les quiz : tu les trouveras dans chaque cours auquel tu es inscrit. Bonne chance, tu vas y arriver !",
		"Les quiz disponibles sont dans tes cours. Pense à réviser le chapitre avant de te lancer !",
	},
}

var studentTopicReplies = map[convo.Role][]string{
	convo.RoleAdmin: {
		"La liste complète des étudiants est dans « Utilisateurs ». Vous pouvez filtrer par cours ou par date d'inscription.",
	},
	convo.RoleTeacher: {
		"Vos étudiants sont listés par cours dans « Mes étudiants », avec leur progression et leurs derniers résultats.",
		"Pour suivre un étudiant en particulier, ouvrez sa fiche depuis la liste d'inscrits du cours concerné.",
	},
	convo.RoleStudent: {
		"Tu veux comparer ta progression ? Ton classement et tes résultats sont dans l'onglet « Mes résultats ».",
	},
}

var statsReplies = map[convo.Role][]string{
	convo.RoleAdmin: {
		"Les statistiques globales (inscriptions, activité, taux de réussite) sont sur le tableau de bord principal.",
		"Votre rapport d'activité est disponible dans « Statistiques ». Voulez-vous le détail par cours ou par période ?",
	},
	convo.RoleTeacher: {
		"Les statistiques de vos classes sont dans « Statistiques » : moyenne par quiz, progression par étudiant, chapitres difficiles.",
	},
	convo.RoleStudent: {
		"Tes statistiques personnelles sont dans « Mes résultats » : moyennes, quiz réussis et progression par cours.",
	},
}

var problemReplies = map[convo.Role][]string{
	convo.RoleAdmin: {
		"Un problème technique ? Consultez d'abord le journal d'activité ; si cela persiste, le support technique est joignable depuis les paramètres.",
	},
	convo.RoleTeacher: {
		"Désolé pour ce souci. Décrivez-moi le problème : est-ce lié à un cours, un quiz ou à l'application elle-même ?",
		"Je note. Essayez d'abord de recharger la page ; si le problème persiste, je peux transmettre un signalement.",
	},
	convo.RoleStudent: {
		"Oups, désolé ! Décris-moi ce qui ne marche pas et on va régler ça ensemble.",
		"Pas de panique. Redémarre l'application ; si ça continue, signale le souci depuis les paramètres.",
	},
}

var genericDomainReplies = map[convo.Role][]string{
	convo.RoleAdmin: {
		"C'est un sujet que je connais. Voulez-vous des détails côté gestion ou côté statistiques ?",
	},
	convo.RoleTeacher: {
		"Je peux vous renseigner là-dessus. Souhaitez-vous une vue d'ensemble ou une action précise ?",
	},
	convo.RoleStudent: {
		"Je connais le sujet ! Dis-moi ce que tu veux faire exactement et je te guide.",
	},
}

var followUpReplies = []string{
	"Très bien, continuons !",
	"Parfait. Autre chose sur ce sujet ?",
	"Entendu ! Je reste disponible si besoin.",
	"D'accord. On passe à la suite ?",
}

var motivationReplies = []string{
	"Courage ! Chaque difficulté surmontée te rapproche de ton objectif. Reprends chapitre par chapitre, ça va rentrer.",
	"C'est normal de trouver ça dur par moments. Fais une courte pause, puis reviens-y étape par étape : tu progresses plus que tu ne le crois.",
	"Ne lâche rien ! Tu peux refaire les quiz autant de fois que nécessaire, c'est comme ça qu'on apprend.",
	"Respire un bon coup. Tu n'es pas seul : demande de l'aide sur le chapitre qui bloque et on avance ensemble.",
}

var longConversationReplies = []string{
	"Nous avons déjà bien avancé dans cette conversation ! Voulez-vous faire le point ou repartir sur un nouveau sujet ?",
	"Quelle discussion ! N'hésitez pas à ouvrir une nouvelle conversation si vous changez complètement de sujet.",
}

// topicPhrases maps internal topic labels to their French rendering in
// the contextual default reply.
var topicPhrases = map[string]string{
	"course":     "les cours",
	"quiz":       "les quiz",
	"student":    "les étudiants",
	"teacher":    "les enseignants",
	"statistics": "les statistiques",
	"help":       "l'aide",
	"problem":    "votre problème",
}

var genericDefaultReplies = map[convo.Role][]string{
	convo.RoleAdmin: {
		"Je n'ai pas bien saisi. Je peux vous aider sur la gestion des utilisateurs, des cours ou les statistiques.",
		"Pouvez-vous reformuler ? Mes domaines : utilisateurs, cours, statistiques de la plateforme.",
	},
	convo.RoleTeacher: {
		"Je n'ai pas bien compris. Essayez par exemple : « créer un quiz » ou « voir mes étudiants ».",
		"Pouvez-vous reformuler ? Je suis spécialisé dans les cours, les quiz et le suivi des étudiants.",
	},
	convo.RoleStudent: {
		"Je n'ai pas bien compris. Essaie par exemple : « montre-moi mes cours » ou « je veux réviser ».",
		"Hmm, peux-tu reformuler ? Je sais t'aider avec tes cours, tes quiz et tes résultats.",
	},
}
