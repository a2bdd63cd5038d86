package catalog

// JSON Schemas for the four dataset files. Validated with gojsonschema at
// load time so a malformed dataset is rejected before it can replace a good
// snapshot. Cost-valued fields accept a number or a descriptive string,
// matching the Cost union type.

const costSchema = `{"type": ["number", "string"]}`

const plansSchema = `{
  "type": "object",
  "required": ["plans"],
  "properties": {
    "plans": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["planId", "planName", "deductible", "outOfPocketMax",
                     "pcpOfficeVisit", "preventiveCare", "telehealth", "rxBenefits"],
        "properties": {
          "planId": {"type": "string", "minLength": 1},
          "planName": {"type": "string", "minLength": 1},
          "deductible": {"$ref": "#/definitions/moneyPair"},
          "outOfPocketMax": {"$ref": "#/definitions/moneyPair"},
          "pcpOfficeVisit": {"$ref": "#/definitions/cost"},
          "specialistOfficeVisit": {"$ref": "#/definitions/cost"},
          "mentalHealthOfficeVisit": {"$ref": "#/definitions/cost"},
          "preventiveCare": {"type": "string"},
          "telehealth": {"$ref": "#/definitions/cost"},
          "rxBenefits": {
            "type": "object",
            "required": ["generic", "preferredBrand", "nonPreferredBrand", "specialty"],
            "properties": {
              "generic": {"$ref": "#/definitions/cost"},
              "preferredBrand": {"$ref": "#/definitions/cost"},
              "nonPreferredBrand": {"$ref": "#/definitions/cost"},
              "specialty": {"$ref": "#/definitions/cost"}
            }
          },
          "hsaContribution": {"type": "number", "minimum": 0}
        }
      }
    }
  },
  "definitions": {
    "cost": ` + costSchema + `,
    "moneyPair": {
      "type": "object",
      "required": ["single", "family"],
      "properties": {
        "single": {"type": "number", "minimum": 0},
        "family": {"type": "number", "minimum": 0}
      }
    }
  }
}`

const providersSchema = `{
  "type": "object",
  "required": ["providers"],
  "properties": {
    "providers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["providerId", "fullName", "specialty", "address", "phone",
                     "acceptingPatients", "inNetwork", "ratingCount",
                     "virtualCareOffered", "plansAccepted"],
        "properties": {
          "providerId": {"type": "string", "minLength": 1},
          "fullName": {"type": "string", "minLength": 1},
          "specialty": {"type": "string"},
          "address": {
            "type": "object",
            "required": ["line1", "city", "state", "zip"],
            "properties": {
              "line1": {"type": "string"},
              "city": {"type": "string"},
              "state": {"type": "string"},
              "zip": {"type": "string"}
            }
          },
          "phone": {"type": "string"},
          "acceptingPatients": {"type": "boolean"},
          "inNetwork": {"type": "boolean"},
          "rating": {"type": ["number", "null"]},
          "ratingCount": {"type": "integer", "minimum": 0},
          "virtualCareOffered": {"type": "boolean"},
          "plansAccepted": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

const qaSchema = `{
  "type": "object",
  "required": ["testQuestions"],
  "properties": {
    "testQuestions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "answer"],
        "properties": {
          "question": {"type": "string", "minLength": 1},
          "answer": {"type": "string", "minLength": 1},
          "providers": {"type": "array", "items": {"type": "string"}},
          "plans": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

const premiumsSchema = `{
  "type": "object",
  "required": ["year", "premiums"],
  "properties": {
    "year": {"type": "integer"},
    "premiums": {
      "type": "object",
      "required": ["selfOnly", "selfPlusOne", "selfAndFamily"],
      "properties": {
        "selfOnly": {"$ref": "#/definitions/rateTable"},
        "selfPlusOne": {"$ref": "#/definitions/rateTable"},
        "selfAndFamily": {"$ref": "#/definitions/rateTable"}
      }
    }
  },
  "definitions": {
    "rateTable": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["biweeklyEmployed", "monthlyRetired"],
        "properties": {
          "biweeklyEmployed": {"type": "number", "minimum": 0},
          "monthlyRetired": {"type": "number", "minimum": 0}
        }
      }
    }
  }
}`
