package i18n

var catalogs = map[Language]map[string]string{
	English: {
		"title":                    "French Visa Photo Maker",
		"photoProcessing":          "Photo Processing",
		"photoProcessingDesc":      "Upload a photo, crop it to 35mm x 45mm and download a photo ready for your French visa application.",
		"upload":                   "Upload",
		"crop":                     "Crop",
		"download":                 "Download",
		"clickToUpload":            "Click to upload a photo",
		"supportedFormats":         "JPG, PNG or WEBP, up to 10MB",
		"scale":                    "Scale",
		"rotate":                   "Rotate",
		"completeCrop":             "Complete crop",
		"photoCompliant":           "Your photo matches the French visa format",
		"downloadPhoto":            "Download photo",
		"startOver":                "Start over",
		"frenchVisaRequirements":   "French Visa Photo Requirements",
		"officialRequirements":     "Based on the official requirements",
		"photoSize":                "Photo size",
		"headPosition":             "Head position",
		"backgroundAndPose":        "Background and pose",
		"photoQuality":             "Photo quality",
		"viewOfficialDoc":          "View the official document",
		"requirements.size1":       "35mm wide and 45mm high",
		"requirements.size2":       "Recent photo, taken within the last 6 months",
		"requirements.position1":   "Head between 32mm and 36mm from chin to crown",
		"requirements.position2":   "Face centred and looking straight at the camera",
		"requirements.background1": "Plain light background, no pattern",
		"requirements.background2": "Neutral expression with the mouth closed",
		"requirements.background3": "No hat or head covering unless for religious reasons",
		"requirements.quality1":    "Sharp and in focus, with even lighting",
		"requirements.quality2":    "No shadows on the face or background",
		"requirements.quality3":    "No red eyes, no reflections on glasses",
	},
	Chinese: {
		"title":                    "法国签证照片制作",
		"photoProcessing":          "照片处理",
		"photoProcessingDesc":      "上传照片，裁剪为35毫米 x 45毫米，下载符合法国签证申请要求的照片。",
		"upload":                   "上传",
		"crop":                     "裁剪",
		"download":                 "下载",
		"clickToUpload":            "点击上传照片",
		"supportedFormats":         "支持JPG、PNG或WEBP，最大10MB",
		"scale":                    "缩放",
		"rotate":                   "旋转",
		"completeCrop":             "完成裁剪",
		"photoCompliant":           "您的照片符合法国签证格式",
		"downloadPhoto":            "下载照片",
		"startOver":                "重新开始",
		"frenchVisaRequirements":   "法国签证照片要求",
		"officialRequirements":     "依据官方要求",
		"photoSize":                "照片尺寸",
		"headPosition":             "头部位置",
		"backgroundAndPose":        "背景与姿势",
		"photoQuality":             "照片质量",
		"viewOfficialDoc":          "查看官方文件",
		"requirements.size1":       "宽35毫米，高45毫米",
		"requirements.size2":       "近6个月内拍摄的照片",
		"requirements.position1":   "下巴至头顶的高度在32毫米至36毫米之间",
		"requirements.position2":   "面部居中，正视镜头",
		"requirements.background1": "浅色纯色背景，无图案",
		"requirements.background2": "表情自然，嘴巴闭合",
		"requirements.background3": "除宗教原因外，不得佩戴帽子或头饰",
		"requirements.quality1":    "清晰对焦，光线均匀",
		"requirements.quality2":    "面部及背景无阴影",
		"requirements.quality3":    "无红眼，眼镜无反光",
	},
	French: {
		"title":                    "Photo de visa pour la France",
		"photoProcessing":          "Traitement de la photo",
		"photoProcessingDesc":      "Importez une photo, recadrez-la au format 35 mm x 45 mm et téléchargez une photo prête pour votre demande de visa.",
		"upload":                   "Importer",
		"crop":                     "Recadrer",
		"download":                 "Télécharger",
		"clickToUpload":            "Cliquez pour importer une photo",
		"supportedFormats":         "JPG, PNG ou WEBP, 10 Mo maximum",
		"scale":                    "Zoom",
		"rotate":                   "Rotation",
		"completeCrop":             "Terminer le recadrage",
		"photoCompliant":           "Votre photo respecte le format du visa français",
		"downloadPhoto":            "Télécharger la photo",
		"startOver":                "Recommencer",
		"frenchVisaRequirements":   "Exigences photo pour le visa français",
		"officialRequirements":     "Selon les exigences officielles",
		"photoSize":                "Taille de la photo",
		"headPosition":             "Position de la tête",
		"backgroundAndPose":        "Fond et pose",
		"photoQuality":             "Qualité de la photo",
		"viewOfficialDoc":          "Voir le document officiel",
		"requirements.size1":       "35 mm de large et 45 mm de haut",
		"requirements.size2":       "Photo récente, de moins de 6 mois",
		"requirements.position1":   "Tête de 32 mm à 36 mm du menton au sommet du crâne",
		"requirements.position2":   "Visage centré, regard face à l'objectif",
		"requirements.background1": "Fond clair et uni, sans motif",
		"requirements.background2": "Expression neutre, bouche fermée",
		"requirements.background3": "Pas de chapeau ni de couvre-chef, sauf motif religieux",
		"requirements.quality1":    "Photo nette, éclairage uniforme",
		"requirements.quality2":    "Aucune ombre sur le visage ni sur le fond",
		"requirements.quality3":    "Pas d'yeux rouges ni de reflets sur les lunettes",
	},
}
